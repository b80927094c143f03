package hashing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hasbyte1/scryptauth/secret"
)

// Encode serialises the result as a single self-describing string:
//
//	$scrypt$ln=16,r=8,p=1$<hex salt>$<hex hash>
//
// ln is log2(N).  dkLen is implied by the hash length.  The timestamp is
// not part of the string.
func (r HashResult) Encode() string {
	return fmt.Sprintf("$%s$ln=%d,r=%d,p=%d$%s$%s",
		AlgorithmScrypt,
		r.Params.LogN(),
		r.Params.R,
		r.Params.P,
		r.Salt,
		r.Hash,
	)
}

// ParseEncoded is the inverse of [HashResult.Encode].  The parameters are
// validated, so a record with out-of-bounds cost cannot reach the
// derivation.  The returned Timestamp is zero.
func ParseEncoded(encoded string) (HashResult, error) {
	// The leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" {
		return HashResult{}, fmt.Errorf("%w: expected 4-segment string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}
	if parts[1] != string(AlgorithmScrypt) {
		return HashResult{}, fmt.Errorf("%w: %q", ErrAlgorithmMismatch, parts[1])
	}

	kvs, err := parseParamSegment(parts[2])
	if err != nil {
		return HashResult{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	ln, ok1 := kvs["ln"]
	r, ok2 := kvs["r"]
	p, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return HashResult{}, fmt.Errorf("%w: missing ln/r/p in parameter segment %q", ErrInvalidHash, parts[2])
	}
	if ln >= 31 || r > MaxR || p > MaxP {
		return HashResult{}, fmt.Errorf("%w: parameter out of range in %q", ErrInvalidHash, parts[2])
	}

	salt, hash := parts[3], parts[4]
	if salt == "" || !secret.IsHex(salt) {
		return HashResult{}, fmt.Errorf("%w: salt is not valid hex", ErrInvalidHash)
	}
	if hash == "" || !secret.IsHex(hash) {
		return HashResult{}, fmt.Errorf("%w: hash is not valid hex", ErrInvalidHash)
	}

	res := HashResult{
		Hash: strings.ToLower(hash),
		Salt: salt,
		Params: ScryptParams{
			N:     1 << ln,
			R:     int(r),
			P:     int(p),
			DKLen: len(hash) / 2,
		},
	}
	if err := res.Params.Validate(); err != nil {
		return HashResult{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	return res, nil
}

// parseParamSegment splits "ln=16,r=8,p=1" into a map.
func parseParamSegment(s string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}
