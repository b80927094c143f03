package redisstore

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/hasbyte1/scryptauth/secret"
)

// KeySize is the required length of a sealing key (AES-256).
const KeySize = 32

var (
	// ErrInvalidKeyLength is returned by [New] for a sealing key that is
	// not [KeySize] bytes.
	ErrInvalidKeyLength = errors.New("auth/redisstore: sealing key must be 32 bytes")

	// ErrUnsealFailed is returned when a sealed record cannot be opened
	// with the current or any previous key.
	ErrUnsealFailed = errors.New("auth/redisstore: record could not be unsealed")
)

// sealer encrypts records with AES-256-GCM.  The Redis key is bound as
// additional data so a record cannot be moved to another attempt ID.
type sealer struct {
	primary  cipher.AEAD
	previous []cipher.AEAD
}

func newSealer(key []byte, previous [][]byte) (*sealer, error) {
	primary, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	s := &sealer{primary: primary}
	for _, k := range previous {
		a, err := newAEAD(k)
		if err != nil {
			return nil, err
		}
		s.previous = append(s.previous, a)
	}
	return s, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("auth/redisstore: create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("auth/redisstore: initialise AES-GCM: %w", err)
	}
	return gcm, nil
}

// seal returns nonce || ciphertext || tag.
func (s *sealer) seal(plaintext []byte, aad string) ([]byte, error) {
	nonce, err := secret.RandomBytes(s.primary.NonceSize())
	if err != nil {
		return nil, err
	}
	return s.primary.Seal(nonce, nonce, plaintext, []byte(aad)), nil
}

// open tries the primary key first, then each previous key in order.
func (s *sealer) open(sealed []byte, aad string) ([]byte, error) {
	for _, a := range append([]cipher.AEAD{s.primary}, s.previous...) {
		ns := a.NonceSize()
		if len(sealed) < ns+a.Overhead() {
			return nil, ErrUnsealFailed
		}
		if out, err := a.Open(nil, sealed[:ns], sealed[ns:], []byte(aad)); err == nil {
			return out, nil
		}
	}
	return nil, ErrUnsealFailed
}
