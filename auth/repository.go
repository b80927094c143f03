package auth

import "context"

// AttemptRepository persists issued login attempts until they are redeemed
// or expire.  Implementations must be safe for concurrent use.  See
// auth/inmemory and auth/redisstore.
type AttemptRepository interface {
	// Save stores a new attempt.  Implementations may drop it once
	// a.ExpiresAt has passed.  Returns [ErrDuplicateAttempt] when an attempt
	// with the same ID is already stored.
	Save(ctx context.Context, a *Attempt) error

	// Consume atomically removes and returns the attempt with the given ID.
	// A second Consume for the same ID returns [ErrAttemptNotFound].
	Consume(ctx context.Context, id string) (*Attempt, error)
}
