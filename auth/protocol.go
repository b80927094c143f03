package auth

import (
	"fmt"

	"github.com/hasbyte1/scryptauth/hashing"
	"github.com/hasbyte1/scryptauth/secret"
)

// CreateLoginParams resolves level (empty means [hashing.DefaultLevel]) and
// returns it with a fresh salt and a fresh form token.  Every call draws new
// random values; nothing is cached or reused.
func CreateLoginParams(level hashing.SecurityLevel) (LoginParams, error) {
	params, err := hashing.Preset(level)
	if err != nil {
		return LoginParams{}, err
	}
	salt, err := secret.GenerateSalt()
	if err != nil {
		return LoginParams{}, fmt.Errorf("auth: create login params: %w", err)
	}
	token, err := secret.GenerateFormToken()
	if err != nil {
		return LoginParams{}, fmt.Errorf("auth: create login params: %w", err)
	}
	return LoginParams{
		Algorithm: hashing.AlgorithmScrypt,
		Params:    params,
		Salt:      salt,
		FormToken: token,
	}, nil
}

// ClientHashPassword derives the value a client sends instead of its
// password.  It returns only the hex hash.
//
// ClientHashPassword takes ownership of password and zeroes it before
// returning.
func ClientHashPassword(password []byte, salt string, params hashing.ScryptParams) (string, error) {
	if salt == "" {
		secret.Wipe(password)
		return "", ErrSaltRequired
	}
	res, err := hashing.Hash(password, salt, params)
	if err != nil {
		return "", err
	}
	return res.Hash, nil
}

// ServerHashPassword runs the second, server-side derivation: clientHash is
// the password input, serverSalt and params are under the server's control
// and independent of the client phase.  The result is what gets stored.
func ServerHashPassword(clientHash, serverSalt string, params hashing.ScryptParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	if err := ValidateClientHash(clientHash); err != nil {
		return "", err
	}
	if serverSalt == "" {
		return "", ErrSaltRequired
	}
	res, err := hashing.HashString(clientHash, serverSalt, params)
	if err != nil {
		return "", err
	}
	return res.Hash, nil
}

// ServerHashPasswordDefault is [ServerHashPassword] with the default preset.
func ServerHashPasswordDefault(clientHash, serverSalt string) (string, error) {
	return ServerHashPassword(clientHash, serverSalt, hashing.DefaultParams())
}

// ValidateClientHash checks that a value received from a client has the
// shape of a derived key: lowercase or uppercase hex encoding
// [hashing.MinDKLen, hashing.MaxDKLen] bytes.  A raw password sent by a
// misbehaving client is rejected here.
func ValidateClientHash(clientHash string) error {
	n := len(clientHash)
	if n < 2*hashing.MinDKLen || n > 2*hashing.MaxDKLen || !secret.IsHex(clientHash) {
		return ErrInvalidClientHash
	}
	return nil
}
