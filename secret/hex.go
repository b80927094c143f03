package secret

import (
	"encoding/hex"
	"fmt"
)

// ToHex returns the lowercase hexadecimal encoding of b, two digits per
// byte and no separators.  An empty or nil slice yields "".
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// FromHex decodes a hexadecimal string.
//
// Returns [ErrOddLength] when len(s) is odd and [ErrInvalidHex] when s
// contains a non-hex character.  Upper-case digits are accepted.  The empty
// string decodes to an empty, non-nil slice so that
// FromHex(ToHex(b)) round-trips for every b.
func FromHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %d characters", ErrOddLength, len(s))
	}
	out := make([]byte, len(s)/2)
	if _, err := hex.Decode(out, []byte(s)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return out, nil
}

// IsHex reports whether s is a well-formed even-length hex string.
func IsHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
