// Command scryptauth inspects scrypt presets and runs the double-hash login
// protocol from the command line.
//
//	scryptauth presets
//	scryptauth estimate -level high
//	scryptauth estimate -N 65536 -r 8 -p 2
//	scryptauth caps
//	scryptauth hash -level standard [-salt HEX] [-encoded]
//	scryptauth verify -hash HEX -salt HEX -level standard
//	scryptauth verify -encoded '$scrypt$ln=16,r=8,p=1$…$…'
//	scryptauth demo -level development [-redis localhost:6379]
//
// Passwords are read from the terminal without echo, or from the first line
// of stdin when it is not a terminal.  Results go to stdout, prompts and
// warnings to stderr.
package main

import (
	"os"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitMismatch = 3
)

func main() {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}
