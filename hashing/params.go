package hashing

import (
	"fmt"
	"math/bits"
)

// Parameter bounds.  Every [ScryptParams] accepted anywhere in this module
// (presets, caller-supplied, server-issued, or parsed from a stored hash)
// satisfies them.
const (
	MinN     = 1 << 10
	MaxN     = 1 << 24
	MinR     = 1
	MaxR     = 64
	MinP     = 1
	MaxP     = 64
	MinDKLen = 16
	MaxDKLen = 128

	// MaxMemoryBytes is the ceiling on 128·N·r, the scrypt working set.
	MaxMemoryBytes uint64 = 1024 * 1024 * 1024

	// blockUnitBytes is the size of one scrypt block per unit of r.  It is
	// specific to scrypt's Salsa20/8 BlockMix and would change with a
	// different primitive.
	blockUnitBytes = 128
)

// ScryptParams is the cost and shape of one scrypt derivation.
//
// The JSON field names are part of the wire format shared with non-Go
// clients and must not change.
type ScryptParams struct {
	// N is the CPU/memory cost.  Must be a power of two in [MinN, MaxN].
	N int `json:"N"`

	// R is the block size.  Range [MinR, MaxR].
	R int `json:"r"`

	// P is the parallelism.  Range [MinP, MaxP].
	P int `json:"p"`

	// DKLen is the derived key length in bytes.  Range [MinDKLen, MaxDKLen].
	DKLen int `json:"dkLen"`
}

// Validate checks the parameters in a fixed order and returns the first
// violation as a [*ValidationError]:
//
//  1. N is a positive power of two
//  2. N within [MinN, MaxN]
//  3. r within [MinR, MaxR]
//  4. p within [MinP, MaxP]
//  5. dkLen within [MinDKLen, MaxDKLen]
//  6. 128·N·r within MaxMemoryBytes
//
// Validate must run before every derivation.  It is the only guard against
// resource exhaustion through attacker-influenced parameters.
func (p ScryptParams) Validate() error {
	if p.N <= 0 || p.N&(p.N-1) != 0 {
		return &ValidationError{Field: "N", Reason: fmt.Sprintf("must be a positive power of two, got %d", p.N)}
	}
	if p.N < MinN || p.N > MaxN {
		return &ValidationError{Field: "N", Reason: fmt.Sprintf("must be in [2^10, 2^24], got %d", p.N)}
	}
	if p.R < MinR || p.R > MaxR {
		return &ValidationError{Field: "r", Reason: fmt.Sprintf("must be in [%d, %d], got %d", MinR, MaxR, p.R)}
	}
	if p.P < MinP || p.P > MaxP {
		return &ValidationError{Field: "p", Reason: fmt.Sprintf("must be in [%d, %d], got %d", MinP, MaxP, p.P)}
	}
	if p.DKLen < MinDKLen || p.DKLen > MaxDKLen {
		return &ValidationError{Field: "dkLen", Reason: fmt.Sprintf("must be in [%d, %d], got %d", MinDKLen, MaxDKLen, p.DKLen)}
	}
	if mem := p.MemoryBytes(); mem > MaxMemoryBytes {
		return &ValidationError{Field: "memory", Reason: fmt.Sprintf("128*N*r = %d bytes exceeds the %d byte ceiling", mem, MaxMemoryBytes)}
	}
	return nil
}

// MemoryBytes returns the estimated peak memory of a derivation, 128·N·r.
// Non-positive N or r yields 0.
func (p ScryptParams) MemoryBytes() uint64 {
	if p.N <= 0 || p.R <= 0 {
		return 0
	}
	return blockUnitBytes * uint64(p.N) * uint64(p.R)
}

// LogN returns log2(N).  Only meaningful when N is a power of two.
func (p ScryptParams) LogN() int {
	if p.N <= 0 {
		return 0
	}
	return bits.Len(uint(p.N)) - 1
}

// String renders the parameters for logs and error messages.
func (p ScryptParams) String() string {
	return fmt.Sprintf("N=%d,r=%d,p=%d,dkLen=%d", p.N, p.R, p.P, p.DKLen)
}
