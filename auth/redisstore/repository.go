// Package redisstore provides a Redis-backed implementation of
// [auth.AttemptRepository] for deployments where several servers share
// login traffic.
//
// Each attempt is stored under "<prefix>:<id>" with a TTL matching its
// expiry, and redeemed with GETDEL so exactly one server can consume it.
// With a sealing key configured, records are encrypted with AES-256-GCM
// before they reach Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hasbyte1/scryptauth/auth"
)

// DefaultPrefix is the key prefix used when Config.Prefix is empty.
const DefaultPrefix = "scryptauth:attempt"

const (
	recordPlain  byte = 1
	recordSealed byte = 2
)

// ErrCorruptRecord is returned when a stored value cannot be decoded.
var ErrCorruptRecord = errors.New("auth/redisstore: corrupt attempt record")

// Config holds the settings of a [Repository].
type Config struct {
	// Prefix namespaces attempt keys.  Defaults to [DefaultPrefix].
	Prefix string

	// Key, when set, enables sealing.  It must be [KeySize] bytes.
	Key []byte

	// PreviousKeys are accepted when opening records, so the sealing key
	// can be rotated without invalidating attempts in flight.
	PreviousKeys [][]byte
}

// Repository implements [auth.AttemptRepository] on Redis.
type Repository struct {
	redis  *redis.Client
	prefix string
	sealer *sealer
	now    func() time.Time
}

var _ auth.AttemptRepository = (*Repository)(nil)

// New constructs a [Repository] on an existing client.
func New(client *redis.Client, cfg Config) (*Repository, error) {
	r := &Repository{redis: client, prefix: cfg.Prefix, now: time.Now}
	if r.prefix == "" {
		r.prefix = DefaultPrefix
	}
	if len(cfg.Key) > 0 {
		s, err := newSealer(cfg.Key, cfg.PreviousKeys)
		if err != nil {
			return nil, err
		}
		r.sealer = s
	}
	return r, nil
}

func (r *Repository) key(id string) string {
	return r.prefix + ":" + id
}

// Save stores a with a TTL of a.ExpiresAt minus now.  An attempt that has
// already expired is not stored.  A zero ExpiresAt stores without TTL.
func (r *Repository) Save(ctx context.Context, a *auth.Attempt) error {
	var ttl time.Duration
	if !a.ExpiresAt.IsZero() {
		ttl = a.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return nil
		}
	}

	key := r.key(a.ID)
	encoded, err := r.encode(a, key)
	if err != nil {
		return err
	}
	ok, err := r.redis.SetNX(ctx, key, encoded, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", auth.ErrDuplicateAttempt, a.ID)
	}
	return nil
}

// Consume atomically fetches and deletes the attempt.  Returns
// [auth.ErrAttemptNotFound] when the key is missing or has expired.
func (r *Repository) Consume(ctx context.Context, id string) (*auth.Attempt, error) {
	key := r.key(id)
	data, err := r.redis.GetDel(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return r.decode(data, key)
}

func (r *Repository) encode(a *auth.Attempt, key string) ([]byte, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("auth/redisstore: encode attempt: %w", err)
	}
	if r.sealer == nil {
		return append([]byte{recordPlain}, body...), nil
	}
	sealed, err := r.sealer.seal(body, key)
	if err != nil {
		return nil, err
	}
	return append([]byte{recordSealed}, sealed...), nil
}

func (r *Repository) decode(data []byte, key string) (*auth.Attempt, error) {
	if len(data) == 0 {
		return nil, ErrCorruptRecord
	}
	body := data[1:]
	switch data[0] {
	case recordPlain:
		if r.sealer != nil {
			return nil, fmt.Errorf("%w: unsealed record with sealing enabled", ErrCorruptRecord)
		}
	case recordSealed:
		if r.sealer == nil {
			return nil, fmt.Errorf("%w: sealed record but no key configured", ErrCorruptRecord)
		}
		var err error
		if body, err = r.sealer.open(body, key); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown version %d", ErrCorruptRecord, data[0])
	}

	var a auth.Attempt
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return &a, nil
}
