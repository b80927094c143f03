package hashing

import "strings"

// Algorithm identifies a key-derivation algorithm on the wire.
// Using a named string type prevents accidental confusion with plain strings.
type Algorithm string

// AlgorithmScrypt is the only supported algorithm.
const AlgorithmScrypt Algorithm = "scrypt"

// Hasher is the string-in, string-out password hashing interface
// implemented by [Manager].  Hashes are in the [HashResult.Encode] format.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh salt is generated for every call, so two calls with the same
	// password produce different outputs.
	Make(password string) (string, error)

	// Check verifies that password matches the encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or
	// (false, err) if the hash is structurally invalid.
	Check(password, encoded string) (bool, error)

	// NeedsRehash reports whether encoded was produced with parameters other
	// than the hasher's current ones.
	NeedsRehash(encoded string) (bool, error)

	// Info extracts metadata from an encoded hash without verifying it.
	Info(encoded string) (HashInfo, error)
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	Algorithm Algorithm

	Params ScryptParams

	// Level is the preset whose parameters match exactly, or "" for
	// custom parameters.
	Level SecurityLevel

	// EstimatedMS is [EstimateTimeMS] for Params.
	EstimatedMS int64
}

// DetectAlgorithm inspects an encoded hash prefix.  It does not validate
// the rest of the string.  The second return value is false when the
// format is not recognised.
func DetectAlgorithm(encoded string) (Algorithm, bool) {
	if strings.HasPrefix(encoded, "$"+string(AlgorithmScrypt)+"$") {
		return AlgorithmScrypt, true
	}
	return "", false
}
