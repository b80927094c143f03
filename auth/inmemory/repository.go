// Package inmemory provides a bounded, thread-safe in-memory implementation
// of [auth.AttemptRepository].
//
// Attempts live in an LRU cache: once the capacity is reached the oldest
// outstanding attempt is evicted and can no longer be redeemed.  Suitable
// for a single process; use auth/redisstore when several servers share
// login traffic.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/hasbyte1/scryptauth/auth"
)

// DefaultSize is the capacity used when New is given a non-positive size.
const DefaultSize = 10_000

// Repository is an LRU-bounded implementation of [auth.AttemptRepository].
type Repository struct {
	// mu makes check-then-add and get-then-remove atomic; the cache's own
	// lock only covers single calls.
	mu    sync.Mutex
	cache *lru.Cache
}

var _ auth.AttemptRepository = (*Repository)(nil)

// New creates an empty [Repository] holding at most size attempts.
func New(size int) (*Repository, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("auth/inmemory: %w", err)
	}
	return &Repository{cache: c}, nil
}

// Save stores a copy of a.  Returns [auth.ErrDuplicateAttempt] when an
// attempt with the same ID is already present.
func (r *Repository) Save(_ context.Context, a *auth.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache.Contains(a.ID) {
		return fmt.Errorf("%w: %s", auth.ErrDuplicateAttempt, a.ID)
	}
	r.cache.Add(a.ID, a.Clone())
	return nil
}

// Consume removes and returns the attempt with the given ID.  Returns
// [auth.ErrAttemptNotFound] when absent.  Expired attempts are still
// returned; the caller decides expiry against its own clock.
func (r *Repository) Consume(_ context.Context, id string) (*auth.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.cache.Peek(id)
	if !ok {
		return nil, auth.ErrAttemptNotFound
	}
	r.cache.Remove(id)
	return v.(*auth.Attempt), nil
}

// Len returns the number of outstanding attempts.
func (r *Repository) Len() int {
	return r.cache.Len()
}

// PruneExpired removes every attempt expired at now and returns how many
// were removed.
func (r *Repository) PruneExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, k := range r.cache.Keys() {
		v, ok := r.cache.Peek(k)
		if !ok {
			continue
		}
		if v.(*auth.Attempt).IsExpired(now) {
			r.cache.Remove(k)
			n++
		}
	}
	return n
}
