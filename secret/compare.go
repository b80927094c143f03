package secret

import "crypto/subtle"

// Equal compares two secrets (hashes, tokens) without leaking where they
// first differ.
//
// Strings of different length compare unequal immediately; only the length
// is revealed.  Equal-length strings are compared byte by byte, OR-ing the
// XOR of every pair into an accumulator, and match only when the
// accumulator is zero.  The comparison is case-sensitive.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// EqualBytes is the []byte form of [Equal].
func EqualBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
