package hashing

import (
	"fmt"
	"sync"
)

// Manager hashes and checks passwords at a configurable default
// [SecurityLevel], storing results in the [HashResult.Encode] format.
//
// Call [Manager.NeedsRehash] on every successful login.  It returns true
// when the stored hash used parameters other than the current default
// level's.  Re-hash and persist immediately:
//
//	ok, _ := m.Check(password, stored)
//	if ok {
//	    if needs, _ := m.NeedsRehash(stored); needs {
//	        fresh, _ := m.Make(password)
//	        persist(userID, fresh)
//	    }
//	}
//
// # Thread safety
//
// All Manager methods are safe for concurrent use.  A [sync.RWMutex]
// serialises SetDefaultLevel while allowing concurrent hashing.
type Manager struct {
	mu     sync.RWMutex
	engine *Engine
	level  SecurityLevel
}

var _ Hasher = (*Manager)(nil)

// NewManager creates a Manager for level.  A nil engine uses a default
// [Engine].
func NewManager(level SecurityLevel, engine *Engine) (*Manager, error) {
	if level == "" {
		level = DefaultLevel
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, string(level))
	}
	if engine == nil {
		engine = defaultEngine
	}
	return &Manager{engine: engine, level: level}, nil
}

// NewDefaultManager creates a Manager at [DefaultLevel] on the default
// engine.
func NewDefaultManager() *Manager {
	return &Manager{engine: defaultEngine, level: DefaultLevel}
}

// SetDefaultLevel changes the level used by Make and NeedsRehash.
func (m *Manager) SetDefaultLevel(level SecurityLevel) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, string(level))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	return nil
}

// DefaultLevel returns the level currently used by Make.
func (m *Manager) DefaultLevel() SecurityLevel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

// Make hashes password with a fresh salt at the default level.
func (m *Manager) Make(password string) (string, error) {
	params, err := Preset(m.DefaultLevel())
	if err != nil {
		return "", err
	}
	res, err := m.engine.HashString(password, "", params)
	if err != nil {
		return "", err
	}
	return res.Encode(), nil
}

// Check verifies password against an encoded hash.  The parameters are
// read from the hash itself, so hashes made at an earlier level still
// verify after SetDefaultLevel.
func (m *Manager) Check(password, encoded string) (bool, error) {
	res, err := ParseEncoded(encoded)
	if err != nil {
		return false, err
	}
	return m.engine.VerifyString(password, res.Hash, res.Salt, res.Params)
}

// NeedsRehash reports whether encoded differs in any parameter from the
// default level's preset.
func (m *Manager) NeedsRehash(encoded string) (bool, error) {
	res, err := ParseEncoded(encoded)
	if err != nil {
		return false, err
	}
	want, err := Preset(m.DefaultLevel())
	if err != nil {
		return false, err
	}
	return res.Params != want, nil
}

// Info parses encoded and describes its parameters.
func (m *Manager) Info(encoded string) (HashInfo, error) {
	res, err := ParseEncoded(encoded)
	if err != nil {
		return HashInfo{}, err
	}
	level, _ := LevelFor(res.Params)
	return HashInfo{
		Algorithm:   AlgorithmScrypt,
		Params:      res.Params,
		Level:       level,
		EstimatedMS: EstimateTimeMS(res.Params),
	}, nil
}
