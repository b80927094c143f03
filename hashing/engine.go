package hashing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/sync/semaphore"

	"github.com/hasbyte1/scryptauth/secret"
)

// Engine runs scrypt derivations.
//
// An Engine keeps no state between calls beyond its configuration, so one
// Engine can be shared by any number of goroutines.  The zero value is not
// usable; construct with [NewEngine].
//
// # Memory budget
//
// [WithMemoryBudget] caps the total scrypt working set of concurrent
// derivations.  A call waits for budget before it starts and never gives
// up once started: scrypt offers no cancellation point.
type Engine struct {
	now    func() time.Time
	sem    *semaphore.Weighted
	budget int64
}

// Option configures an [Engine].
type Option func(*Engine)

// WithMemoryBudget bounds the summed 128·N·r of in-flight derivations.
// A derivation larger than the whole budget runs alone.  Non-positive
// values disable the limit.
func WithMemoryBudget(bytes int64) Option {
	return func(e *Engine) {
		if bytes <= 0 {
			e.sem, e.budget = nil, 0
			return
		}
		e.sem, e.budget = semaphore.NewWeighted(bytes), bytes
	}
}

// WithClock overrides the source of [HashResult.Timestamp].
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine returns an Engine with no memory budget and the wall clock.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Hash derives a key from password and returns it with its provenance.
//
// Steps, in order:
//
//  1. params are validated; failure returns a [*ValidationError].
//  2. an empty salt is replaced by a fresh [secret.GenerateSalt] value;
//     otherwise salt is used verbatim.
//  3. salt is hex-decoded; failure returns an [*EncodingError].
//  4. scrypt runs; failure wraps [ErrDerivationFailed].
//  5. the key is hex-encoded into HashResult.Hash.
//
// Hash takes ownership of password and zeroes it before returning, on
// success and on every error path.  Callers that still need the bytes must
// pass a copy.
func (e *Engine) Hash(password []byte, salt string, params ScryptParams) (HashResult, error) {
	buf := secret.NewBuffer(password)
	defer buf.Release()
	return e.hash(buf.Bytes(), salt, params)
}

// HashString is [Engine.Hash] for a string password.  The string is copied
// into a buffer that is zeroed on return; the string itself is immutable
// and cannot be wiped.
func (e *Engine) HashString(password, salt string, params ScryptParams) (HashResult, error) {
	buf := secret.BufferFromString(password)
	defer buf.Release()
	return e.hash(buf.Bytes(), salt, params)
}

// Verify recomputes the hash of password with salt and params and compares
// it to expectedHash with [secret.Equal].
//
// (true, nil) means a match and (false, nil) a mismatch.  A malformed
// record (invalid params, bad hex, empty salt, or a hash whose length does
// not match params.DKLen) is an error, never a false result.
//
// Like Hash, Verify takes ownership of password and zeroes it.
func (e *Engine) Verify(password []byte, expectedHash, salt string, params ScryptParams) (bool, error) {
	buf := secret.NewBuffer(password)
	defer buf.Release()
	return e.verify(buf.Bytes(), expectedHash, salt, params)
}

// VerifyString is [Engine.Verify] for a string password.
func (e *Engine) VerifyString(password, expectedHash, salt string, params ScryptParams) (bool, error) {
	buf := secret.BufferFromString(password)
	defer buf.Release()
	return e.verify(buf.Bytes(), expectedHash, salt, params)
}

func (e *Engine) verify(password []byte, expectedHash, salt string, params ScryptParams) (bool, error) {
	if err := params.Validate(); err != nil {
		return false, err
	}
	if salt == "" {
		return false, &EncodingError{Field: "salt", Reason: "salt is required for verification"}
	}
	if !secret.IsHex(expectedHash) {
		return false, &EncodingError{Field: "hash", Reason: "expected hash is not valid hex"}
	}
	if len(expectedHash) != 2*params.DKLen {
		return false, &EncodingError{Field: "hash",
			Reason: fmt.Sprintf("expected hash has %d hex characters, params require %d", len(expectedHash), 2*params.DKLen)}
	}

	res, err := e.hash(password, salt, params)
	if err != nil {
		return false, err
	}
	// Derived hashes are lowercase; stored ones may not be.
	return secret.Equal(res.Hash, strings.ToLower(expectedHash)), nil
}

// hash is the single derivation routine behind every public entry point.
func (e *Engine) hash(password []byte, salt string, params ScryptParams) (HashResult, error) {
	if err := params.Validate(); err != nil {
		return HashResult{}, err
	}

	if salt == "" {
		s, err := secret.GenerateSalt()
		if err != nil {
			return HashResult{}, fmt.Errorf("hashing: failed to generate salt: %w", err)
		}
		salt = s
	}

	saltBytes, err := secret.FromHex(salt)
	if err != nil {
		return HashResult{}, &EncodingError{Field: "salt", Reason: err.Error(), Err: err}
	}

	key, err := e.derive(password, saltBytes, params)
	if err != nil {
		return HashResult{}, err
	}
	defer secret.Wipe(key)

	return HashResult{
		Hash:      secret.ToHex(key),
		Salt:      salt,
		Params:    params,
		Timestamp: e.now(),
	}, nil
}

func (e *Engine) derive(password, salt []byte, p ScryptParams) ([]byte, error) {
	if e.sem != nil {
		w := int64(p.MemoryBytes())
		if w > e.budget {
			w = e.budget
		}
		// Background never expires, so Acquire only returns once budget is free.
		_ = e.sem.Acquire(context.Background(), w)
		defer e.sem.Release(w)
	}

	key, err := scrypt.Key(password, salt, p.N, p.R, p.P, p.DKLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return key, nil
}

// defaultEngine backs the package-level helpers.
var defaultEngine = NewEngine()

// Hash runs [Engine.Hash] on a default engine.
func Hash(password []byte, salt string, params ScryptParams) (HashResult, error) {
	return defaultEngine.Hash(password, salt, params)
}

// HashString runs [Engine.HashString] on a default engine.
func HashString(password, salt string, params ScryptParams) (HashResult, error) {
	return defaultEngine.HashString(password, salt, params)
}

// Verify runs [Engine.Verify] on a default engine.
func Verify(password []byte, expectedHash, salt string, params ScryptParams) (bool, error) {
	return defaultEngine.Verify(password, expectedHash, salt, params)
}

// VerifyString runs [Engine.VerifyString] on a default engine.
func VerifyString(password, expectedHash, salt string, params ScryptParams) (bool, error) {
	return defaultEngine.VerifyString(password, expectedHash, salt, params)
}
