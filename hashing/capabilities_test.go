package hashing

import (
	"strings"
	"testing"
)

func withProbes(t *testing.T, sha, random, interactive bool) {
	t.Helper()
	oldSHA, oldRandom, oldInteractive := probeHardwareSHA, probeRandom, probeInteractive
	probeHardwareSHA = func() bool { return sha }
	probeRandom = func() bool { return random }
	probeInteractive = func() bool { return interactive }
	t.Cleanup(func() {
		probeHardwareSHA, probeRandom, probeInteractive = oldSHA, oldRandom, oldInteractive
	})
}

func TestDetectCapabilities_Probes(t *testing.T) {
	withProbes(t, true, true, false)
	c := DetectCapabilities()
	if !c.SecureHashAPI || !c.SecureContext || !c.ServerEnvironment || c.ClientEnvironment {
		t.Errorf("server host: %+v", c)
	}
	if c.NumCPU < 1 || c.GOOS == "" || c.GOARCH == "" {
		t.Errorf("runtime info missing: %+v", c)
	}

	withProbes(t, false, false, true)
	c = DetectCapabilities()
	if c.SecureHashAPI || c.SecureContext || c.ServerEnvironment || !c.ClientEnvironment {
		t.Errorf("client host: %+v", c)
	}
}

func TestDetectCapabilities_Real(t *testing.T) {
	c := DetectCapabilities()
	if c.ServerEnvironment == c.ClientEnvironment {
		t.Errorf("server and client flags should differ: %+v", c)
	}
	if !c.SecureContext {
		t.Error("crypto/rand should be readable in tests")
	}
}

func TestWarnings(t *testing.T) {
	dev := presets[LevelDevelopment]
	paranoid := presets[LevelParanoid]

	healthy := Capabilities{SecureHashAPI: true, SecureContext: true, ServerEnvironment: true, NumCPU: 4}
	if w := healthy.Warnings(dev); len(w) != 0 {
		t.Errorf("healthy server, development preset: %v", w)
	}

	tests := []struct {
		name   string
		caps   Capabilities
		params ScryptParams
		want   string
	}{
		{"no random", Capabilities{SecureHashAPI: true, NumCPU: 4}, dev, "crypto/rand"},
		{"no sha", Capabilities{SecureContext: true, NumCPU: 4}, dev, "SIMD-accelerated SHA-256"},
		{"slow on client", Capabilities{SecureHashAPI: true, SecureContext: true, ClientEnvironment: true, NumCPU: 4}, paranoid, "interactive client"},
		{"p above cpus", healthy, ScryptParams{N: 1 << 10, R: 1, P: 8, DKLen: 16}, "parallelism"},
		{"large memory", healthy, paranoid, "MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.caps.Warnings(tt.params)
			if !strings.Contains(strings.Join(w, "\n"), tt.want) {
				t.Errorf("warnings %v do not mention %q", w, tt.want)
			}
		})
	}
}

func TestWarnings_NeverGatesHashing(t *testing.T) {
	withProbes(t, false, true, true)
	c := DetectCapabilities()
	if len(c.Warnings(presets[LevelParanoid])) == 0 {
		t.Fatal("expected warnings")
	}
	if _, err := HashString("pw", "", ScryptParams{N: MinN, R: 8, P: 1, DKLen: 32}); err != nil {
		t.Fatalf("hashing must not depend on capabilities: %v", err)
	}
}
