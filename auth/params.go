package auth

import (
	"fmt"

	"github.com/hasbyte1/scryptauth/hashing"
	"github.com/hasbyte1/scryptauth/secret"
)

// LoginParams is what the server sends a client to begin one login or
// registration.  The JSON field names are shared with non-Go clients and
// must not change:
//
//	{"algorithm":"scrypt","params":{"N":65536,"r":8,"p":1,"dkLen":32},"salt":"…","formToken":"…"}
type LoginParams struct {
	Algorithm hashing.Algorithm    `json:"algorithm"`
	Params    hashing.ScryptParams `json:"params"`
	Salt      string               `json:"salt"`
	FormToken string               `json:"formToken"`
}

// Validate checks a bundle before a client spends time deriving with it.
// A compromised or replayed server response must not be able to make the
// client allocate unbounded memory.
func (p LoginParams) Validate() error {
	if p.Algorithm != hashing.AlgorithmScrypt {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(p.Algorithm))
	}
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.Salt == "" || !secret.IsHex(p.Salt) {
		return fmt.Errorf("%w: salt must be non-empty hex", ErrInvalidLoginParams)
	}
	if len(p.FormToken) != 2*secret.FormTokenBytes || !secret.IsHex(p.FormToken) {
		return fmt.Errorf("%w: form token must be %d hex characters", ErrInvalidLoginParams, 2*secret.FormTokenBytes)
	}
	return nil
}

// ClientHash validates the bundle and runs [ClientHashPassword] with its
// salt and parameters.  Ownership of password passes to ClientHash.
func (p LoginParams) ClientHash(password []byte) (string, error) {
	if err := p.Validate(); err != nil {
		secret.Wipe(password)
		return "", err
	}
	return ClientHashPassword(password, p.Salt, p.Params)
}
