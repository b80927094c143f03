package auth

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned when a [LoginParams] names an
	// algorithm other than scrypt.
	ErrUnsupportedAlgorithm = errors.New("auth: unsupported algorithm")

	// ErrInvalidLoginParams is returned when a [LoginParams] bundle is
	// malformed (bad salt or form token).  Parameter bound violations are
	// reported as [hashing.ErrInvalidParams] instead.
	ErrInvalidLoginParams = errors.New("auth: invalid login params")

	// ErrSaltRequired is returned when a client or server phase is called
	// without a salt.  Both phases must be reproducible, so neither may
	// invent its own.
	ErrSaltRequired = errors.New("auth: salt is required")

	// ErrInvalidClientHash is returned when the value received from a
	// client is not a hex-encoded derived key.
	ErrInvalidClientHash = errors.New("auth: invalid client hash")

	// ErrSessionRequired is returned when an attempt is issued without a
	// session ID to bind it to.
	ErrSessionRequired = errors.New("auth: session ID is required")

	// ErrAttemptNotFound is returned when an attempt ID is unknown, already
	// redeemed, or evicted.
	ErrAttemptNotFound = errors.New("auth: login attempt not found")

	// ErrAttemptExpired is returned when an attempt is redeemed after its
	// expiry time.
	ErrAttemptExpired = errors.New("auth: login attempt expired")

	// ErrFormTokenMismatch is returned when the form token or session does
	// not match the redeemed attempt.
	ErrFormTokenMismatch = errors.New("auth: form token mismatch")

	// ErrDuplicateAttempt is returned by an [AttemptRepository] when an
	// attempt with the same ID already exists.
	ErrDuplicateAttempt = errors.New("auth: duplicate login attempt ID")

	// ErrStoreUnavailable wraps backend failures of an [AttemptRepository].
	ErrStoreUnavailable = errors.New("auth: attempt store unavailable")
)
