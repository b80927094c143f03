package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hasbyte1/scryptauth/hashing"
)

type command struct {
	summary string
	run     func(c *cli, args []string) int
}

var commands = map[string]command{
	"presets":  {"list the built-in security levels", (*cli).presets},
	"estimate": {"estimate cost and memory for a level or explicit parameters", (*cli).estimate},
	"caps":     {"print the capabilities of this environment", (*cli).caps},
	"hash":     {"hash a password", (*cli).hash},
	"verify":   {"verify a password against a stored hash", (*cli).verify},
	"demo":     {"run a full registration and login", (*cli).demo},
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) run(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" || args[0] == "--help" {
		c.usage()
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(c.stderr, "scryptauth: unknown command %q\n\n", args[0])
		c.usage()
		return exitUsage
	}
	return cmd.run(c, args[1:])
}

func (c *cli) usage() {
	fmt.Fprintln(c.stderr, "Usage: scryptauth <command> [flags]")
	fmt.Fprintln(c.stderr)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.stderr, "  %-9s %s\n", name, commands[name].summary)
	}
}

// flags returns a FlagSet that writes its usage to stderr and reports
// errors instead of exiting.
func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("scryptauth "+name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// parse runs fs.Parse and maps the result to an exit code; ok is false
// when the caller should return code.
func (c *cli) parse(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(c.stderr, "%s: unexpected arguments: %s\n", fs.Name(), strings.Join(fs.Args(), " "))
		return exitUsage, false
	}
	return exitOK, true
}

func (c *cli) fail(err error) int {
	fmt.Fprintln(c.stderr, "scryptauth:", err)
	return exitFailure
}

func (c *cli) printJSON(v any) int {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return c.fail(err)
	}
	return exitOK
}

func (c *cli) warn(msgs []string) {
	for _, m := range msgs {
		fmt.Fprintln(c.stderr, "warning:", m)
	}
}

// levelParams resolves -level, falling back to the default preset.
func levelParams(level string) (hashing.ScryptParams, error) {
	l, err := hashing.ParseSecurityLevel(level)
	if err != nil {
		return hashing.ScryptParams{}, err
	}
	return hashing.Preset(l)
}

func mib(b uint64) float64 { return float64(b) / (1 << 20) }
