package hashing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := hashing.Verify(password, hash, salt, params)
//	if errors.Is(err, hashing.ErrInvalidParams) {
//	    // stored parameters are out of bounds
//	}
var (
	// ErrInvalidParams is matched by every [*ValidationError].  It is always
	// returned before any derivation work starts.
	ErrInvalidParams = errors.New("hashing: invalid scrypt parameters")

	// ErrInvalidEncoding is matched by every [*EncodingError], returned when a
	// salt or expected hash is not well-formed hex.
	ErrInvalidEncoding = errors.New("hashing: invalid encoding")

	// ErrDerivationFailed wraps an error reported by the scrypt primitive
	// itself.  The primitive's own error is kept in the chain.
	ErrDerivationFailed = errors.New("hashing: key derivation failed")

	// ErrUnknownLevel is returned when a [SecurityLevel] is not one of the
	// four built-in levels.
	ErrUnknownLevel = errors.New("hashing: unknown security level")

	// ErrInvalidHash is returned when an encoded hash string cannot be
	// parsed because it has an unrecognised format, missing fields, or
	// invalid encoding.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrAlgorithmMismatch is returned when an encoded hash names an
	// algorithm other than scrypt.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)

// ValidationError reports the first parameter that violated its bound.
//
// Field is one of "N", "r", "p", "dkLen", or "memory", so callers can switch
// on it.  The message never contains password or key material.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hashing: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes every ValidationError match [ErrInvalidParams].
func (e *ValidationError) Unwrap() error { return ErrInvalidParams }

// EncodingError reports a malformed hex value (salt or expected hash).
//
// The offending value itself is not included in the message.
type EncodingError struct {
	Field  string
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("hashing: invalid %s encoding: %s", e.Field, e.Reason)
}

// Unwrap exposes both [ErrInvalidEncoding] and the underlying decode error
// (for example [secret.ErrOddLength]).
func (e *EncodingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidEncoding}
	}
	return []error{ErrInvalidEncoding, e.Err}
}
