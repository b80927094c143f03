package secret

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// SaltBytes is the number of random bytes in a generated salt.
	SaltBytes = 32

	// FormTokenBytes is the number of random bytes in a generated form token.
	FormTokenBytes = 16
)

// GenerateSalt returns 32 bytes from crypto/rand, hex-encoded to 64
// lowercase characters.
func GenerateSalt() (string, error) {
	b, err := RandomBytes(SaltBytes)
	if err != nil {
		return "", err
	}
	return ToHex(b), nil
}

// GenerateFormToken returns a fresh anti-forgery token: 16 bytes from
// crypto/rand, hex-encoded to 32 lowercase characters.  The token carries no
// meaning and is never derived from any other value.
func GenerateFormToken() (string, error) {
	b, err := RandomBytes(FormTokenBytes)
	if err != nil {
		return "", err
	}
	return ToHex(b), nil
}

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return b, nil
}
