package hashing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hasbyte1/scryptauth/secret"
)

// HashResult is the output of one derivation together with everything
// needed to reproduce it.
//
// It is a value type; copies are independent.  On the wire the timestamp
// is encoded as Unix milliseconds:
//
//	{"hash":"…","salt":"…","params":{"N":65536,"r":8,"p":1,"dkLen":32},"timestamp":1700000000000}
type HashResult struct {
	// Hash is the derived key, lowercase hex, 2·Params.DKLen characters.
	// Upper-case hex from other producers is accepted on verification.
	Hash string

	// Salt is the hex salt exactly as it was used.
	Salt string

	// Params are the parameters the hash was derived with.
	Params ScryptParams

	// Timestamp is when the derivation finished.
	Timestamp time.Time
}

type hashResultJSON struct {
	Hash      string       `json:"hash"`
	Salt      string       `json:"salt"`
	Params    ScryptParams `json:"params"`
	Timestamp int64        `json:"timestamp"`
}

// MarshalJSON implements [json.Marshaler].
func (r HashResult) MarshalJSON() ([]byte, error) {
	var ts int64
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.UnixMilli()
	}
	return json.Marshal(hashResultJSON{
		Hash:      r.Hash,
		Salt:      r.Salt,
		Params:    r.Params,
		Timestamp: ts,
	})
}

// UnmarshalJSON implements [json.Unmarshaler].  It does not validate; call
// [HashResult.Validate] on records read from storage.
func (r *HashResult) UnmarshalJSON(data []byte) error {
	var raw hashResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Hash, r.Salt, r.Params = raw.Hash, raw.Salt, raw.Params
	r.Timestamp = time.Time{}
	if raw.Timestamp != 0 {
		r.Timestamp = time.UnixMilli(raw.Timestamp)
	}
	return nil
}

// Validate checks that the record could have been produced by this
// package: valid params, hex salt, and a hex hash of length 2·DKLen.
func (r HashResult) Validate() error {
	if err := r.Params.Validate(); err != nil {
		return err
	}
	if r.Salt == "" || !secret.IsHex(r.Salt) {
		return &EncodingError{Field: "salt", Reason: "salt is empty or not valid hex"}
	}
	if !secret.IsHex(r.Hash) || len(r.Hash) != 2*r.Params.DKLen {
		return &EncodingError{Field: "hash",
			Reason: fmt.Sprintf("hash must be %d hex characters", 2*r.Params.DKLen)}
	}
	return nil
}

// Verify checks password against this record using e.  Ownership of
// password passes to Verify, as with [Engine.Verify].
func (r HashResult) Verify(e *Engine, password []byte) (bool, error) {
	if e == nil {
		e = defaultEngine
	}
	return e.Verify(password, r.Hash, r.Salt, r.Params)
}
