package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	pwe "github.com/kuking/go-pwentropy"
	"golang.org/x/term"
)

var errEmptyPassword = errors.New("empty password")

// readPassword prompts on stderr and reads without echo when stdin is a
// terminal.  Otherwise it reads the first line of stdin, so passwords can be
// piped in.  The trailing newline is stripped.
func (c *cli) readPassword(prompt string) ([]byte, error) {
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.stderr, prompt)
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.stderr)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		if len(pw) == 0 {
			return nil, errEmptyPassword
		}
		return pw, nil
	}

	line, err := bufio.NewReader(c.stdin).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read password: %w", err)
	}
	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return nil, errEmptyPassword
	}
	return line, nil
}

// passwordEntropy hands pwe a string copy of pw.  That copy is immutable
// and cannot be wiped; it is the one place the CLI accepts an unzeroed
// password copy, and it lives only until the next garbage collection.
func passwordEntropy(pw []byte) float64 {
	return pwe.FairEntropy(string(pw))
}
