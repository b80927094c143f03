package auth

import (
	"time"

	"github.com/hasbyte1/scryptauth/hashing"
)

// DefaultAttemptTTL is how long an issued login attempt stays redeemable.
const DefaultAttemptTTL = 5 * time.Minute

// Config holds the runtime configuration of a [Service].
type Config struct {
	// ClientLevel is the preset handed to clients for new registrations.
	// Defaults to [hashing.DefaultLevel].
	ClientLevel hashing.SecurityLevel

	// ServerLevel is the preset used for the server-side derivation.
	// Defaults to [hashing.DefaultLevel].
	ServerLevel hashing.SecurityLevel

	// AttemptTTL bounds the time between Issue and Redeem.
	// Defaults to [DefaultAttemptTTL] if zero or negative.
	AttemptTTL time.Duration
}

// DefaultConfig returns a [Config] populated with the defaults.
func DefaultConfig() Config {
	return Config{
		ClientLevel: hashing.DefaultLevel,
		ServerLevel: hashing.DefaultLevel,
		AttemptTTL:  DefaultAttemptTTL,
	}
}

func (c Config) withDefaults() Config {
	if c.ClientLevel == "" {
		c.ClientLevel = hashing.DefaultLevel
	}
	if c.ServerLevel == "" {
		c.ServerLevel = hashing.DefaultLevel
	}
	if c.AttemptTTL <= 0 {
		c.AttemptTTL = DefaultAttemptTTL
	}
	return c
}
