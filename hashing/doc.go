// Package hashing derives password hashes with scrypt, a memory-hard
// function that makes brute force expensive on GPUs and ASICs.
//
// # Parameters
//
// [ScryptParams] holds the four cost knobs (N, r, p, dkLen).
// [ScryptParams.Validate] enforces their bounds and a 1 GiB memory
// ceiling; every entry point validates before deriving anything.
//
// Four presets cover the usual cases:
//
//	development  N=2^14 r=8 p=1 dkLen=32   ≈ 50 ms
//	standard     N=2^16 r=8 p=1 dkLen=32   ≈ 200 ms  (default)
//	high         N=2^18 r=8 p=1 dkLen=32   ≈ 800 ms
//	paranoid     N=2^20 r=8 p=1 dkLen=32   ≈ 3200 ms
//
// # Quick start
//
//	params, _ := hashing.Preset(hashing.LevelStandard)
//	res, err := hashing.HashString("my-secret-password", "", params)
//	if err != nil { log.Fatal(err) }
//
//	ok, err := hashing.VerifyString("my-secret-password", res.Hash, res.Salt, res.Params)
//
// [Engine.HashAsync] runs the same derivation on its own goroutine and
// returns a [Pending] handle; output is identical to the blocking form.
//
// # Errors
//
// Out-of-bounds parameters yield a [*ValidationError], malformed hex an
// [*EncodingError], and a failure inside scrypt wraps [ErrDerivationFailed].
// Verify never reports a malformed record as a wrong password.
//
// # Stored form
//
// [HashResult.Encode] produces a self-contained string:
//
//	$scrypt$ln=16,r=8,p=1$<hex salt>$<hex hash>
//
// [Manager] stores and checks hashes in that form and reports when a
// stored hash should be upgraded to the current level.
//
// # Password material
//
// Byte-slice passwords passed to Hash, Verify, or HashAsync are owned by
// the call and zeroed before it returns.  This is best effort: the Go
// runtime may have copied the bytes already.
package hashing
