package hashing

import (
	"fmt"
	"strings"
)

// SecurityLevel names one of the built-in parameter presets.
type SecurityLevel string

const (
	// LevelDevelopment is for local development and tests (≈ 50 ms).
	LevelDevelopment SecurityLevel = "development"
	// LevelStandard is the default for production logins (≈ 200 ms).
	LevelStandard SecurityLevel = "standard"
	// LevelHigh is for privileged accounts (≈ 800 ms).
	LevelHigh SecurityLevel = "high"
	// LevelParanoid is for offline or rare operations (≈ 3200 ms, 1 GiB).
	LevelParanoid SecurityLevel = "paranoid"

	// DefaultLevel is used wherever no level is given.
	DefaultLevel = LevelStandard
)

// presets is initialised once and never written afterwards; concurrent
// reads need no locking.  Access goes through Preset, which copies.
var presets = map[SecurityLevel]ScryptParams{
	LevelDevelopment: {N: 1 << 14, R: 8, P: 1, DKLen: 32},
	LevelStandard:    {N: 1 << 16, R: 8, P: 1, DKLen: 32},
	LevelHigh:        {N: 1 << 18, R: 8, P: 1, DKLen: 32},
	LevelParanoid:    {N: 1 << 20, R: 8, P: 1, DKLen: 32},
}

var levelOrder = [...]SecurityLevel{LevelDevelopment, LevelStandard, LevelHigh, LevelParanoid}

// Preset returns a copy of the parameters for level.  The empty level
// resolves to [DefaultLevel].  Unknown levels return [ErrUnknownLevel].
//
// ScryptParams is a value type, so modifying the result never affects
// later calls.
func Preset(level SecurityLevel) (ScryptParams, error) {
	if level == "" {
		level = DefaultLevel
	}
	p, ok := presets[level]
	if !ok {
		return ScryptParams{}, fmt.Errorf("%w: %q", ErrUnknownLevel, string(level))
	}
	return p, nil
}

// DefaultParams returns a copy of the [DefaultLevel] preset.
func DefaultParams() ScryptParams {
	return presets[DefaultLevel]
}

// Levels returns all levels ordered from cheapest to most expensive.
func Levels() []SecurityLevel {
	out := make([]SecurityLevel, len(levelOrder))
	copy(out, levelOrder[:])
	return out
}

// LevelFor reports which preset, if any, has exactly the parameters p.
func LevelFor(p ScryptParams) (SecurityLevel, bool) {
	for _, l := range levelOrder {
		if presets[l] == p {
			return l, true
		}
	}
	return "", false
}

// ParseSecurityLevel maps a name to a level, ignoring case and surrounding
// whitespace.  The empty string yields [DefaultLevel].
func ParseSecurityLevel(s string) (SecurityLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLevel, nil
	}
	l := SecurityLevel(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// Valid reports whether l is one of the built-in levels.
func (l SecurityLevel) Valid() bool {
	_, ok := presets[l]
	return ok
}

func (l SecurityLevel) String() string { return string(l) }
