package auth

import (
	"time"

	"github.com/hasbyte1/scryptauth/hashing"
)

// Attempt is one issued [LoginParams] bundle awaiting redemption.
//
// The form token and salt are not secrets in the cryptographic sense (the
// client sees both) but they are never logged.
type Attempt struct {
	ID        string                `json:"id"`
	SessionID string                `json:"sessionId"`
	FormToken string                `json:"formToken"`
	Salt      string                `json:"salt"`
	Level     hashing.SecurityLevel `json:"level,omitempty"` // empty when params came from a stored credential off-preset
	Params    hashing.ScryptParams  `json:"params"`
	IssuedAt  time.Time             `json:"issuedAt"`
	ExpiresAt time.Time             `json:"expiresAt"`
}

// LoginParams returns the bundle to send to the client.
func (a *Attempt) LoginParams() LoginParams {
	return LoginParams{
		Algorithm: hashing.AlgorithmScrypt,
		Params:    a.Params,
		Salt:      a.Salt,
		FormToken: a.FormToken,
	}
}

// IsExpired reports whether the attempt can no longer be redeemed at now.
// An attempt with a zero ExpiresAt never expires.
func (a *Attempt) IsExpired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

// Clone returns a copy of a.  Attempt holds no reference types, so a value
// copy is deep.
func (a *Attempt) Clone() *Attempt {
	cp := *a
	return &cp
}

// Credential is what an application stores per user after registration.
// The client-phase salt and parameters must be kept with the server hash
// so that later logins can reissue them.
type Credential struct {
	ClientSalt   string               `json:"clientSalt"`
	ClientParams hashing.ScryptParams `json:"clientParams"`
	Server       hashing.HashResult   `json:"server"`
}

// Validate checks that c is complete and internally consistent.
func (c Credential) Validate() error {
	if c.ClientSalt == "" {
		return ErrSaltRequired
	}
	if err := c.ClientParams.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}
