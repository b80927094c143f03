package secret

import "errors"

// Sentinel errors returned by [FromHex] and the random generators.
//
// Use [errors.Is] for comparisons:
//
//	b, err := secret.FromHex(s)
//	if errors.Is(err, secret.ErrOddLength) {
//	    // ambiguous encoding
//	}
var (
	// ErrOddLength is returned by [FromHex] when the input has an odd number
	// of characters.  Such input cannot be split into whole bytes.
	ErrOddLength = errors.New("secret: hex input has odd length")

	// ErrInvalidHex is returned by [FromHex] when the input contains a
	// character outside [0-9a-fA-F].
	ErrInvalidHex = errors.New("secret: invalid hex character")

	// ErrRandomSource is returned when crypto/rand cannot supply bytes.
	ErrRandomSource = errors.New("secret: random source unavailable")
)
