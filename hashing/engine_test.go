package hashing_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hasbyte1/scryptauth/hashing"
	"github.com/hasbyte1/scryptauth/secret"
)

// fastParams returns the cheapest valid parameters for unit tests.
// These are intentionally weak — do NOT use in production.
func fastParams() hashing.ScryptParams {
	return hashing.ScryptParams{N: hashing.MinN, R: 8, P: 1, DKLen: 32}
}

const testSalt = "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"

// ──────────────────────────────────────────────────────────────────────────────
// Known answer
// ──────────────────────────────────────────────────────────────────────────────

func TestHash_RFC7914Vector(t *testing.T) {
	// RFC 7914 §12: scrypt("password", "NaCl", N=1024, r=8, p=16, dkLen=64).
	const want = "fdbabe1c9d3472007856e7190d01e9fe7c6ad7cbc8237830e77376634b373162" +
		"2eaf30d92e22a3886ff109279d9830dac727afb94a83ee6d8360cbdfa2cc0640"
	params := hashing.ScryptParams{N: 1024, R: 8, P: 16, DKLen: 64}

	res, err := hashing.HashString("password", secret.ToHex([]byte("NaCl")), params)
	if err != nil {
		t.Fatal(err)
	}
	if res.Hash != want {
		t.Errorf("Hash = %s\nwant   %s", res.Hash, want)
	}
	if res.Salt != "4e61436c" || res.Params != params {
		t.Errorf("provenance not recorded: %+v", res)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hash
// ──────────────────────────────────────────────────────────────────────────────

func TestHash_Deterministic(t *testing.T) {
	first, err := hashing.Hash([]byte("Tr0ub4dor&3"), testSalt, fastParams())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := hashing.Hash([]byte("Tr0ub4dor&3"), testSalt, fastParams())
		if err != nil {
			t.Fatal(err)
		}
		if again.Hash != first.Hash {
			t.Fatalf("run %d: %s != %s", i, again.Hash, first.Hash)
		}
	}
}

func TestHash_SaltSensitive(t *testing.T) {
	a, _ := hashing.HashString("same", testSalt, fastParams())
	b, _ := hashing.HashString("same", strings.Repeat("ab", 32), fastParams())
	if a.Hash == b.Hash {
		t.Error("different salts produced the same hash")
	}
}

func TestHash_HashLengthMatchesDKLen(t *testing.T) {
	for _, dk := range []int{16, 32, 64, 128} {
		p := fastParams()
		p.DKLen = dk
		res, err := hashing.HashString("pw", testSalt, p)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Hash) != 2*dk || !secret.IsHex(res.Hash) {
			t.Errorf("dkLen=%d: hash %q", dk, res.Hash)
		}
	}
}

func TestHash_GeneratesSaltWhenEmpty(t *testing.T) {
	a, err := hashing.HashString("same", "", fastParams())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := hashing.HashString("same", "", fastParams())
	if len(a.Salt) != 64 || !secret.IsHex(a.Salt) {
		t.Errorf("generated salt %q", a.Salt)
	}
	if a.Salt == b.Salt || a.Hash == b.Hash {
		t.Error("two calls without a salt must use different salts")
	}
}

func TestHash_SaltUsedVerbatim(t *testing.T) {
	upper := strings.ToUpper(testSalt)
	res, err := hashing.HashString("pw", upper, fastParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.Salt != upper {
		t.Errorf("Salt = %q, want caller's value", res.Salt)
	}
	lower, _ := hashing.HashString("pw", testSalt, fastParams())
	if lower.Hash != res.Hash {
		t.Error("hex case of the salt must not change the derived key")
	}
}

func TestHash_Timestamp(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e := hashing.NewEngine(hashing.WithClock(func() time.Time { return fixed }))
	res, err := e.HashString("pw", testSalt, fastParams())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", res.Timestamp, fixed)
	}
}

func TestHash_InvalidParamsBeforeWork(t *testing.T) {
	pw := []byte("secret")
	_, err := hashing.Hash(pw, "zz", hashing.ScryptParams{N: 1000, R: 8, P: 1, DKLen: 32})
	if !errors.Is(err, hashing.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams (validated before salt decode), got %v", err)
	}
	if !bytes.Equal(pw, make([]byte, len(pw))) {
		t.Error("password not wiped on the validation error path")
	}
}

func TestHash_MalformedSalt(t *testing.T) {
	tests := []struct {
		name string
		salt string
		is   error
	}{
		{"odd length", "abc", secret.ErrOddLength},
		{"non-hex", "zzzz", secret.ErrInvalidHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hashing.HashString("pw", tt.salt, fastParams())
			if !errors.Is(err, hashing.ErrInvalidEncoding) || !errors.Is(err, tt.is) {
				t.Fatalf("expected ErrInvalidEncoding and %v, got %v", tt.is, err)
			}
			var ee *hashing.EncodingError
			if !errors.As(err, &ee) || ee.Field != "salt" {
				t.Errorf("expected *EncodingError for salt, got %v", err)
			}
		})
	}
}

func TestHash_WipesPassword(t *testing.T) {
	pw := []byte("wipe-me-please")
	if _, err := hashing.Hash(pw, testSalt, fastParams()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pw, make([]byte, len(pw))) {
		t.Errorf("password buffer not zeroed: %q", pw)
	}
}

func TestHash_ErrorsNeverContainPassword(t *testing.T) {
	const pw = "very-secret-password"
	_, err := hashing.HashString(pw, "odd", fastParams())
	if err == nil || strings.Contains(err.Error(), pw) {
		t.Fatalf("unexpected error text: %v", err)
	}
	_, err = hashing.VerifyString(pw, "nothex", testSalt, fastParams())
	if err == nil || strings.Contains(err.Error(), pw) {
		t.Fatalf("unexpected error text: %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestVerify_CorrectPassword(t *testing.T) {
	res, _ := hashing.HashString("correct", testSalt, fastParams())
	ok, err := hashing.VerifyString("correct", res.Hash, res.Salt, res.Params)
	if err != nil || !ok {
		t.Fatalf("Verify correct password: ok=%v err=%v", ok, err)
	}
}

func TestVerify_SingleCharacterPerturbation(t *testing.T) {
	const pw = "Tr0ub4dor&3"
	res, _ := hashing.HashString(pw, testSalt, fastParams())
	for i := range pw {
		b := []byte(pw)
		b[i] ^= 0x01
		ok, err := hashing.Verify(b, res.Hash, res.Salt, res.Params)
		if err != nil {
			t.Fatalf("position %d: unexpected error %v", i, err)
		}
		if ok {
			t.Errorf("position %d: perturbed password verified", i)
		}
	}
}

func TestVerify_WrongSaltOrParams(t *testing.T) {
	res, _ := hashing.HashString("pw", testSalt, fastParams())

	ok, err := hashing.VerifyString("pw", res.Hash, strings.Repeat("00", 32), res.Params)
	if err != nil || ok {
		t.Errorf("wrong salt: ok=%v err=%v", ok, err)
	}

	p := res.Params
	p.R = 4
	ok, err = hashing.VerifyString("pw", res.Hash, res.Salt, p)
	if err != nil || ok {
		t.Errorf("wrong params: ok=%v err=%v", ok, err)
	}
}

func TestVerify_MalformedRecordIsError(t *testing.T) {
	res, _ := hashing.HashString("pw", testSalt, fastParams())

	tests := []struct {
		name   string
		hash   string
		salt   string
		params hashing.ScryptParams
		is     error
	}{
		{"invalid params", res.Hash, res.Salt, hashing.ScryptParams{N: 1000, R: 8, P: 1, DKLen: 32}, hashing.ErrInvalidParams},
		{"odd salt", res.Hash, "abc", res.Params, hashing.ErrInvalidEncoding},
		{"empty salt", res.Hash, "", res.Params, hashing.ErrInvalidEncoding},
		{"non-hex hash", strings.Repeat("x", 64), res.Salt, res.Params, hashing.ErrInvalidEncoding},
		{"short hash", res.Hash[:62], res.Salt, res.Params, hashing.ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hashing.VerifyString("pw", tt.hash, tt.salt, tt.params)
			if ok {
				t.Fatal("malformed record verified")
			}
			if !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestVerify_UpperCaseExpectedHash(t *testing.T) {
	res, _ := hashing.HashString("pw", testSalt, fastParams())
	stored := res
	stored.Hash = strings.ToUpper(res.Hash)
	if err := stored.Validate(); err != nil {
		t.Fatalf("Validate(upper-case hash) = %v", err)
	}

	ok, err := hashing.VerifyString("pw", stored.Hash, stored.Salt, stored.Params)
	if err != nil || !ok {
		t.Errorf("correct password against upper-case hash: ok=%v err=%v", ok, err)
	}
	ok, err = stored.Verify(nil, []byte("pw"))
	if err != nil || !ok {
		t.Errorf("HashResult.Verify with upper-case hash: ok=%v err=%v", ok, err)
	}
	ok, err = hashing.VerifyString("nope", stored.Hash, stored.Salt, stored.Params)
	if err != nil || ok {
		t.Errorf("wrong password against upper-case hash: ok=%v err=%v", ok, err)
	}
}

func TestHashResult_Verify(t *testing.T) {
	res, _ := hashing.HashString("pw", testSalt, fastParams())
	ok, err := res.Verify(nil, []byte("pw"))
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	ok, _ = res.Verify(hashing.NewEngine(), []byte("nope"))
	if ok {
		t.Error("wrong password verified")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Async
// ──────────────────────────────────────────────────────────────────────────────

func TestHashAsync_MatchesBlocking(t *testing.T) {
	blocking, err := hashing.Hash([]byte("Tr0ub4dor&3"), testSalt, fastParams())
	if err != nil {
		t.Fatal(err)
	}
	async, err := hashing.HashAsync([]byte("Tr0ub4dor&3"), testSalt, fastParams()).Wait()
	if err != nil {
		t.Fatal(err)
	}
	if async.Hash != blocking.Hash || async.Salt != blocking.Salt || async.Params != blocking.Params {
		t.Errorf("async %+v != blocking %+v", async, blocking)
	}
}

func TestHashAsync_PropagatesErrors(t *testing.T) {
	_, err := hashing.HashAsync([]byte("pw"), "abc", fastParams()).Wait()
	if !errors.Is(err, hashing.ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestHashAsync_DoneAndWipe(t *testing.T) {
	pw := []byte("async-secret")
	p := hashing.HashAsync(pw, testSalt, fastParams())
	select {
	case <-p.Done():
	case <-time.After(30 * time.Second):
		t.Fatal("derivation did not finish")
	}
	if !bytes.Equal(pw, make([]byte, len(pw))) {
		t.Error("password not wiped after async derivation")
	}
}

func TestPending_WaitContextExpired(t *testing.T) {
	e := hashing.NewEngine()
	params, _ := hashing.Preset(hashing.LevelDevelopment)
	p := e.HashAsync([]byte("pw"), testSalt, params)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.WaitContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error %v", err)
	}
	// The derivation still completes afterwards.
	if _, err := p.Wait(); err != nil {
		t.Fatal(err)
	}
	res, err := p.WaitContext(context.Background())
	if err != nil || res.Hash == "" {
		t.Fatalf("WaitContext after completion: %+v, %v", res, err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Memory budget
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_MemoryBudgetConcurrent(t *testing.T) {
	// 1 MiB per derivation, budget for two at a time.
	e := hashing.NewEngine(hashing.WithMemoryBudget(2 << 20))
	want, _ := hashing.HashString("pw", testSalt, fastParams())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.HashString("pw", testSalt, fastParams())
			if err != nil {
				errs <- err
				return
			}
			if res.Hash != want.Hash {
				errs <- errors.New("hash mismatch under concurrency")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestEngine_MemoryBudgetSmallerThanDerivation(t *testing.T) {
	// A single derivation larger than the budget must still run.
	e := hashing.NewEngine(hashing.WithMemoryBudget(1024))
	done := make(chan error, 1)
	go func() {
		_, err := e.HashString("pw", testSalt, fastParams())
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("derivation blocked on an undersized budget")
	}
}

func TestEngine_DisableBudget(t *testing.T) {
	e := hashing.NewEngine(hashing.WithMemoryBudget(1<<20), hashing.WithMemoryBudget(0))
	if _, err := e.HashString("pw", testSalt, fastParams()); err != nil {
		t.Fatal(err)
	}
}
