package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hasbyte1/scryptauth/hashing"
	"github.com/hasbyte1/scryptauth/secret"
)

// IssueOptions holds the parameters for [Service.Issue].
type IssueOptions struct {
	// Level selects the client-phase preset for a new registration.
	// Defaults to Config.ClientLevel.  Ignored when Credential is set.
	Level hashing.SecurityLevel

	// Credential, when set, reissues the client salt and parameters recorded
	// at registration so a returning user's client reproduces the same
	// client hash.
	Credential *Credential
}

// ServiceOption configures a [Service].
type ServiceOption func(*Service)

// WithEngine sets the engine used for server-side derivations.
func WithEngine(e *hashing.Engine) ServiceOption {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets the logger for attempt lifecycle events.  The default
// discards everything.  Form tokens, salts, and hashes are never logged.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for issue and expiry decisions.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service runs the server side of the double-hash protocol.  Persistence of
// in-flight attempts is delegated to [AttemptRepository]; persistence of
// credentials is left to the caller.
type Service struct {
	repo   AttemptRepository
	engine *hashing.Engine
	config Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a [Service].  Zero fields of cfg take their
// defaults.
func NewService(repo AttemptRepository, cfg Config, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		engine: hashing.NewEngine(),
		config: cfg.withDefaults(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.config }

// Issue creates a login attempt bound to sessionID and stores it until
// Config.AttemptTTL elapses.  Send attempt.LoginParams() and attempt.ID to
// the client.
func (s *Service) Issue(ctx context.Context, sessionID string, opts IssueOptions) (*Attempt, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	var (
		lp  LoginParams
		err error
	)
	if opts.Credential != nil {
		lp, err = s.reissue(*opts.Credential)
	} else {
		level := opts.Level
		if level == "" {
			level = s.config.ClientLevel
		}
		lp, err = CreateLoginParams(level)
	}
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("auth: attempt ID: %w", err)
	}

	now := s.now()
	level, _ := hashing.LevelFor(lp.Params)
	a := &Attempt{
		ID:        id.String(),
		SessionID: sessionID,
		FormToken: lp.FormToken,
		Salt:      lp.Salt,
		Level:     level,
		Params:    lp.Params,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.AttemptTTL),
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("auth: persist attempt: %w", err)
	}

	s.logger.InfoContext(ctx, "login attempt issued",
		slog.String("attempt_id", a.ID),
		slog.String("level", string(a.Level)),
		slog.Bool("returning", opts.Credential != nil),
		slog.Time("expires_at", a.ExpiresAt),
	)
	return a, nil
}

func (s *Service) reissue(c Credential) (LoginParams, error) {
	if c.ClientSalt == "" {
		return LoginParams{}, ErrSaltRequired
	}
	if err := c.ClientParams.Validate(); err != nil {
		return LoginParams{}, err
	}
	token, err := secret.GenerateFormToken()
	if err != nil {
		return LoginParams{}, fmt.Errorf("auth: reissue login params: %w", err)
	}
	return LoginParams{
		Algorithm: hashing.AlgorithmScrypt,
		Params:    c.ClientParams,
		Salt:      c.ClientSalt,
		FormToken: token,
	}, nil
}

// Redeem consumes the attempt attemptID.  The attempt is removed whether or
// not the checks pass, so a guessed form token burns the attempt.
//
// Returns [ErrAttemptNotFound] for an unknown or already redeemed attempt,
// [ErrAttemptExpired] after its expiry, and [ErrFormTokenMismatch] when
// sessionID or formToken differ from the issued values.
func (s *Service) Redeem(ctx context.Context, sessionID, attemptID, formToken string) (*Attempt, error) {
	a, err := s.repo.Consume(ctx, attemptID)
	if err != nil {
		s.logger.WarnContext(ctx, "login attempt redeem failed",
			slog.String("attempt_id", attemptID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if a.IsExpired(s.now()) {
		s.logger.WarnContext(ctx, "login attempt expired", slog.String("attempt_id", a.ID))
		return nil, ErrAttemptExpired
	}

	sessionOK := secret.Equal(sessionID, a.SessionID)
	tokenOK := secret.Equal(formToken, a.FormToken)
	if !sessionOK || !tokenOK {
		s.logger.WarnContext(ctx, "login attempt rejected",
			slog.String("attempt_id", a.ID),
			slog.Bool("session_match", sessionOK),
		)
		return nil, ErrFormTokenMismatch
	}

	s.logger.InfoContext(ctx, "login attempt redeemed", slog.String("attempt_id", a.ID))
	return a, nil
}

// Register runs the server phase for a new user.  a is the redeemed
// attempt the client derived clientHash with; its salt and parameters are
// recorded in the returned [Credential] next to the server hash.
func (s *Service) Register(ctx context.Context, a *Attempt, clientHash string) (Credential, error) {
	if a == nil {
		return Credential{}, ErrAttemptNotFound
	}
	res, err := s.serverPhase(clientHash)
	if err != nil {
		return Credential{}, fmt.Errorf("auth: register: %w", err)
	}
	s.logger.InfoContext(ctx, "credential registered",
		slog.String("attempt_id", a.ID),
		slog.String("server_level", string(s.config.ServerLevel)),
	)
	return Credential{
		ClientSalt:   a.Salt,
		ClientParams: a.Params,
		Server:       res,
	}, nil
}

func (s *Service) serverPhase(clientHash string) (hashing.HashResult, error) {
	if err := ValidateClientHash(clientHash); err != nil {
		return hashing.HashResult{}, err
	}
	params, err := hashing.Preset(s.config.ServerLevel)
	if err != nil {
		return hashing.HashResult{}, err
	}
	serverSalt, err := secret.GenerateSalt()
	if err != nil {
		return hashing.HashResult{}, err
	}
	return s.engine.HashString(clientHash, serverSalt, params)
}

// VerifyLogin reports whether clientHash matches the stored credential.
// A mismatch is (false, nil); malformed input or a corrupt credential is
// an error, never false.
func (s *Service) VerifyLogin(ctx context.Context, clientHash string, cred Credential) (bool, error) {
	if err := ValidateClientHash(clientHash); err != nil {
		return false, err
	}
	if err := cred.Server.Validate(); err != nil {
		return false, fmt.Errorf("auth: stored credential: %w", err)
	}
	ok, err := s.engine.VerifyString(clientHash, cred.Server.Hash, cred.Server.Salt, cred.Server.Params)
	if err != nil {
		return false, fmt.Errorf("auth: verify login: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "login verification failed")
	}
	return ok, nil
}

// NeedsRehash reports whether cred's server phase was derived with
// parameters other than Config.ServerLevel's.  Rehashing needs the client
// hash, so do it right after a successful [Service.VerifyLogin].
func (s *Service) NeedsRehash(cred Credential) bool {
	params, err := hashing.Preset(s.config.ServerLevel)
	if err != nil {
		return false
	}
	return cred.Server.Params != params
}

// Rehash re-derives the server phase of cred at Config.ServerLevel with a
// fresh server salt.  The client phase is unchanged.
func (s *Service) Rehash(ctx context.Context, clientHash string, cred Credential) (Credential, error) {
	res, err := s.serverPhase(clientHash)
	if err != nil {
		return Credential{}, fmt.Errorf("auth: rehash: %w", err)
	}
	s.logger.InfoContext(ctx, "credential rehashed",
		slog.String("server_level", string(s.config.ServerLevel)),
	)
	cred.Server = res
	return cred, nil
}
