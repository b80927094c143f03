package hashing

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sys/cpu"
	"golang.org/x/term"
)

// Capabilities describes the host as far as hashing is concerned.  It is
// advisory: nothing in this module refuses to hash because of it.
type Capabilities struct {
	// SecureHashAPI is true when the CPU has a SIMD or dedicated SHA-256
	// path (AVX2 on amd64, the SHA2 extension on arm64), which scrypt uses
	// for its PBKDF2 stages.  x/sys/cpu exposes no SHA-NI flag, so on amd64
	// this reports vector support, not SHA instructions.
	SecureHashAPI bool `json:"secureHashApi"`

	// SecureContext is true when crypto/rand can be read.
	SecureContext bool `json:"secureContext"`

	// ServerEnvironment is true when the process has no interactive
	// terminal on stdin (daemon, container, CI).
	ServerEnvironment bool `json:"serverEnvironment"`

	// ClientEnvironment is true when a user is at an interactive terminal.
	ClientEnvironment bool `json:"clientEnvironment"`

	GOOS   string `json:"goos"`
	GOARCH string `json:"goarch"`
	NumCPU int    `json:"numCpu"`
}

// Probes used by DetectCapabilities.  Tests replace them.
var (
	probeHardwareSHA = func() bool {
		// SIMD-accelerated SHA-256: AVX2 on amd64, SHA2 on arm64.
		return cpu.X86.HasAVX2 || cpu.ARM64.HasSHA2
	}
	probeRandom = func() bool {
		var b [1]byte
		_, err := io.ReadFull(rand.Reader, b[:])
		return err == nil
	}
	probeInteractive = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
)

// DetectCapabilities queries the host.  Call it once at startup and use
// [Capabilities.Warnings] to tell operators about poor choices.
func DetectCapabilities() Capabilities {
	interactive := probeInteractive()
	return Capabilities{
		SecureHashAPI:     probeHardwareSHA(),
		SecureContext:     probeRandom(),
		ServerEnvironment: !interactive,
		ClientEnvironment: interactive,
		GOOS:              runtime.GOOS,
		GOARCH:            runtime.GOARCH,
		NumCPU:            runtime.NumCPU(),
	}
}

// interactiveBudgetMS is the largest estimated derivation that will not
// noticeably stall an interactive user.
const interactiveBudgetMS = 1000

// Warnings returns human-readable advice about hashing with p on this host.
// An empty result means nothing worth reporting.
func (c Capabilities) Warnings(p ScryptParams) []string {
	var out []string
	if !c.SecureContext {
		out = append(out, "crypto/rand is unavailable: salts and form tokens cannot be generated")
	}
	if !c.SecureHashAPI {
		out = append(out, "no SIMD-accelerated SHA-256 detected: derivation will be slower than estimated")
	}
	if ms := EstimateTimeMS(p); c.ClientEnvironment && ms > interactiveBudgetMS {
		out = append(out, fmt.Sprintf("estimated %d ms per derivation will stall an interactive client: use HashAsync", ms))
	}
	if c.NumCPU > 0 && p.P > c.NumCPU {
		out = append(out, fmt.Sprintf("parallelism p=%d exceeds the %d available CPUs", p.P, c.NumCPU))
	}
	if mem := p.MemoryBytes(); mem > MaxMemoryBytes/2 {
		out = append(out, fmt.Sprintf("derivation needs %d MiB of memory per call", mem>>20))
	}
	return out
}
