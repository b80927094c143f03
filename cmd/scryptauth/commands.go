package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/hasbyte1/scryptauth/hashing"
)

func (c *cli) presets(args []string) int {
	fs := c.flags("presets")
	asJSON := fs.Bool("json", false, "print as JSON")
	if code, ok := c.parse(fs, args); !ok {
		return code
	}

	type row struct {
		Level       hashing.SecurityLevel `json:"level"`
		Params      hashing.ScryptParams  `json:"params"`
		MemoryBytes uint64                `json:"memoryBytes"`
		EstimatedMS int64                 `json:"estimatedMs"`
	}
	var rows []row
	for _, l := range hashing.Levels() {
		p, _ := hashing.Preset(l)
		rows = append(rows, row{l, p, p.MemoryBytes(), hashing.EstimateTimeMS(p)})
	}
	if *asJSON {
		return c.printJSON(rows)
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tN\tr\tp\tdkLen\tMEMORY\tEST.")
	for _, r := range rows {
		marker := ""
		if r.Level == hashing.DefaultLevel {
			marker = " (default)"
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%d\t%d\t%d\t%.0f MiB\t%d ms\n",
			r.Level, marker, r.Params.N, r.Params.R, r.Params.P, r.Params.DKLen, mib(r.MemoryBytes), r.EstimatedMS)
	}
	if err := tw.Flush(); err != nil {
		return c.fail(err)
	}
	return exitOK
}

func (c *cli) estimate(args []string) int {
	fs := c.flags("estimate")
	level := fs.String("level", "", "security level (overridden by -N/-r/-p)")
	n := fs.Int("N", 0, "CPU/memory cost, a power of two")
	r := fs.Int("r", 0, "block size")
	p := fs.Int("p", 0, "parallelisation")
	dkLen := fs.Int("dklen", 32, "derived key length in bytes")
	if code, ok := c.parse(fs, args); !ok {
		return code
	}

	params, err := levelParams(*level)
	if err != nil {
		return c.fail(err)
	}
	if *n > 0 {
		params.N = *n
	}
	if *r > 0 {
		params.R = *r
	}
	if *p > 0 {
		params.P = *p
	}
	params.DKLen = *dkLen

	fmt.Fprintf(c.stdout, "params:    %s\n", params)
	fmt.Fprintf(c.stdout, "memory:    %.1f MiB\n", mib(params.MemoryBytes()))
	fmt.Fprintf(c.stdout, "estimated: %d ms\n", hashing.EstimateTimeMS(params))
	if err := params.Validate(); err != nil {
		fmt.Fprintf(c.stdout, "valid:     no (%v)\n", err)
		return exitFailure
	}
	fmt.Fprintln(c.stdout, "valid:     yes")
	if l, ok := hashing.LevelFor(params); ok {
		fmt.Fprintf(c.stdout, "level:     %s\n", l)
	}
	c.warn(hashing.DetectCapabilities().Warnings(params))
	return exitOK
}

func (c *cli) caps(args []string) int {
	fs := c.flags("caps")
	if code, ok := c.parse(fs, args); !ok {
		return code
	}
	return c.printJSON(hashing.DetectCapabilities())
}

func (c *cli) hash(args []string) int {
	fs := c.flags("hash")
	level := fs.String("level", "", "security level (default standard)")
	salt := fs.String("salt", "", "hex salt (default: 32 random bytes)")
	encoded := fs.Bool("encoded", false, "print the $scrypt$ encoded form instead of JSON")
	if code, ok := c.parse(fs, args); !ok {
		return code
	}

	params, err := levelParams(*level)
	if err != nil {
		return c.fail(err)
	}
	c.warn(hashing.DetectCapabilities().Warnings(params))

	pw, err := c.readPassword("Password: ")
	if err != nil {
		return c.fail(err)
	}
	c.checkStrength(pw)

	res, err := hashing.Hash(pw, *salt, params)
	if err != nil {
		return c.fail(err)
	}
	if *encoded {
		fmt.Fprintln(c.stdout, res.Encode())
		return exitOK
	}
	return c.printJSON(res)
}

func (c *cli) verify(args []string) int {
	fs := c.flags("verify")
	level := fs.String("level", "", "security level the hash was made with")
	hash := fs.String("hash", "", "expected hex hash")
	salt := fs.String("salt", "", "hex salt")
	encoded := fs.String("encoded", "", "$scrypt$ encoded hash (replaces -hash, -salt, -level)")
	if code, ok := c.parse(fs, args); !ok {
		return code
	}

	var stored hashing.HashResult
	if *encoded != "" {
		r, err := hashing.ParseEncoded(*encoded)
		if err != nil {
			return c.fail(err)
		}
		stored = r
	} else {
		if *hash == "" || *salt == "" {
			fmt.Fprintln(c.stderr, "scryptauth verify: -hash and -salt are required without -encoded")
			return exitUsage
		}
		params, err := levelParams(*level)
		if err != nil {
			return c.fail(err)
		}
		stored = hashing.HashResult{Hash: *hash, Salt: *salt, Params: params}
	}

	pw, err := c.readPassword("Password: ")
	if err != nil {
		return c.fail(err)
	}
	ok, err := hashing.Verify(pw, stored.Hash, stored.Salt, stored.Params)
	if err != nil {
		return c.fail(err)
	}
	if !ok {
		fmt.Fprintln(c.stdout, "mismatch")
		return exitMismatch
	}
	fmt.Fprintln(c.stdout, "match")
	return exitOK
}

// weakEntropyBits is the estimated entropy below which hash warns.
const weakEntropyBits = 60

func (c *cli) checkStrength(pw []byte) {
	if bits := passwordEntropy(pw); bits < weakEntropyBits {
		fmt.Fprintf(c.stderr, "warning: estimated password entropy is %.1f bits (recommended: at least %d)\n", bits, weakEntropyBits)
	}
}
