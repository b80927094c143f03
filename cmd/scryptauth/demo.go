package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hasbyte1/scryptauth/auth"
	"github.com/hasbyte1/scryptauth/auth/inmemory"
	"github.com/hasbyte1/scryptauth/auth/redisstore"
	"github.com/hasbyte1/scryptauth/hashing"
	"github.com/hasbyte1/scryptauth/secret"
)

func (c *cli) demo(args []string) int {
	fs := c.flags("demo")
	level := fs.String("level", string(hashing.LevelDevelopment), "security level for both phases")
	redisAddr := fs.String("redis", "", "store attempts in Redis at this address instead of memory")
	sealKey := fs.String("seal-key", "", "hex AES-256 key for sealing Redis records")
	verbose := fs.Bool("v", false, "log attempt lifecycle events to stderr")
	if code, ok := c.parse(fs, args); !ok {
		return code
	}

	l, err := hashing.ParseSecurityLevel(*level)
	if err != nil {
		return c.fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := c.attemptRepository(ctx, *redisAddr, *sealKey)
	if err != nil {
		return c.fail(err)
	}
	defer closeRepo()

	opts := []auth.ServiceOption{}
	if *verbose {
		opts = append(opts, auth.WithLogger(slog.New(slog.NewTextHandler(c.stderr, nil))))
	}
	svc := auth.NewService(repo, auth.Config{ClientLevel: l, ServerLevel: l}, opts...)

	pw, err := c.readPassword("Password: ")
	if err != nil {
		return c.fail(err)
	}
	c.checkStrength(pw)
	password := secret.NewBuffer(pw)
	defer password.Release()

	fmt.Fprintln(c.stdout, "== registration")
	cred, err := c.demoRegister(ctx, svc, password)
	if err != nil {
		return c.fail(err)
	}
	if code := c.printJSON(cred); code != exitOK {
		return code
	}

	fmt.Fprintln(c.stdout, "== login")
	a, err := svc.Issue(ctx, "demo-login", auth.IssueOptions{Credential: &cred})
	if err != nil {
		return c.fail(err)
	}
	clientHash, err := c.demoClientHash(a, password)
	if err != nil {
		return c.fail(err)
	}
	if _, err := svc.Redeem(ctx, "demo-login", a.ID, a.FormToken); err != nil {
		return c.fail(err)
	}
	start := time.Now()
	ok, err := svc.VerifyLogin(ctx, clientHash, cred)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "server verify: %v (%s)\n", ok, time.Since(start).Round(time.Millisecond))

	_, err = svc.Redeem(ctx, "demo-login", a.ID, a.FormToken)
	fmt.Fprintf(c.stdout, "replayed form token: %v\n", err)

	if !ok {
		return exitMismatch
	}
	return exitOK
}

func (c *cli) demoRegister(ctx context.Context, svc *auth.Service, password *secret.Buffer) (auth.Credential, error) {
	a, err := svc.Issue(ctx, "demo-registration", auth.IssueOptions{})
	if err != nil {
		return auth.Credential{}, err
	}
	if code := c.printJSON(a.LoginParams()); code != exitOK {
		return auth.Credential{}, errors.New("write login params")
	}
	clientHash, err := c.demoClientHash(a, password)
	if err != nil {
		return auth.Credential{}, err
	}
	redeemed, err := svc.Redeem(ctx, "demo-registration", a.ID, a.FormToken)
	if err != nil {
		return auth.Credential{}, err
	}
	start := time.Now()
	cred, err := svc.Register(ctx, redeemed, clientHash)
	if err != nil {
		return auth.Credential{}, err
	}
	fmt.Fprintf(c.stdout, "server hash: %s (%s)\n", cred.Server.Hash, time.Since(start).Round(time.Millisecond))
	return cred, nil
}

// demoClientHash plays the client: it derives from a copy of the password
// so the buffer survives for the next phase.
func (c *cli) demoClientHash(a *auth.Attempt, password *secret.Buffer) (string, error) {
	pw := append([]byte(nil), password.Bytes()...)
	start := time.Now()
	h, err := a.LoginParams().ClientHash(pw)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(c.stdout, "client hash: %s (%s)\n", h, time.Since(start).Round(time.Millisecond))
	return h, nil
}

// attemptRepository returns the in-memory store, or a Redis store when addr
// is set.  The returned func releases the backend.
func (c *cli) attemptRepository(ctx context.Context, addr, sealKeyHex string) (auth.AttemptRepository, func(), error) {
	if addr == "" {
		if sealKeyHex != "" {
			return nil, nil, errors.New("-seal-key requires -redis")
		}
		repo, err := inmemory.New(0)
		return repo, func() {}, err
	}

	var key []byte
	if sealKeyHex != "" {
		k, err := secret.FromHex(sealKeyHex)
		if err != nil {
			return nil, nil, fmt.Errorf("-seal-key: %w", err)
		}
		key = k
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	repo, err := redisstore.New(client, redisstore.Config{Key: key})
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return repo, func() { client.Close() }, nil
}
