package hashing

import "context"

// Pending is the handle of a derivation running on its own goroutine.
//
// There is no way to stop it: once started, scrypt runs to completion.
type Pending struct {
	done chan struct{}
	res  HashResult
	err  error
}

// HashAsync starts [Engine.Hash] on a new goroutine and returns
// immediately.  The result is bit-identical to the blocking form for the
// same inputs.
//
// HashAsync takes ownership of password; it is zeroed when the derivation
// finishes.  The caller must not read or modify it in the meantime.
func (e *Engine) HashAsync(password []byte, salt string, params ScryptParams) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.res, p.err = e.Hash(password, salt, params)
	}()
	return p
}

// HashAsync runs [Engine.HashAsync] on a default engine.
func HashAsync(password []byte, salt string, params ScryptParams) *Pending {
	return defaultEngine.HashAsync(password, salt, params)
}

// Done is closed when the derivation has finished.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the derivation finishes and returns its outcome.
func (p *Pending) Wait() (HashResult, error) {
	<-p.done
	return p.res, p.err
}

// WaitContext is Wait with a deadline.  When ctx ends first it returns
// ctx.Err() while the derivation keeps running: the salt and any form token
// tied to it must not be reused until Done is closed.
func (p *Pending) WaitContext(ctx context.Context) (HashResult, error) {
	select {
	case <-p.done:
		return p.res, p.err
	case <-ctx.Done():
		return HashResult{}, ctx.Err()
	}
}
