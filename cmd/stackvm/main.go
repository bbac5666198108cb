// Command stackvm runs and disassembles programs for the 256-bit stack
// machine.
//
// Usage:
//
//	stackvm run [flags] <hex>...
//	stackvm disasm <hex>
//
// Programs are given as hex, with or without a 0x prefix. Whitespace
// inside a program is ignored, so "60 01 60 01 01" is accepted when
// quoted.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/eth2030/stackvm/log"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0"
var version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code. It takes the CLI
// arguments without the program name so it can be tested in isolation.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if code, ok := err.(exitCode); ok {
			return int(code)
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// exitCode lets a subcommand choose the process exit status without cobra
// printing an error.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:           "stackvm",
		Short:         "A deterministic 256-bit stack machine.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(stderr, verbosity)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().IntVar(&verbosity, "verbosity", 2, "log level 0-5")

	root.AddCommand(newRunCmd(stdout, stderr))
	root.AddCommand(newDisasmCmd(stdout))
	return root
}

// setupLogging installs the default logger. Terminals get text output,
// everything else gets JSON.
func setupLogging(w io.Writer, verbosity int) {
	level := log.VerbosityToLevel(verbosity)
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		log.SetDefault(log.NewJSON(w, level))
		return
	}
	log.SetDefault(log.NewText(w, level))
}

// decodeProgram parses a hex program, tolerating a missing 0x prefix and
// embedded whitespace.
func decodeProgram(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if s == "0x" {
		return []byte{}, nil
	}
	code, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid program %q: %w", s, err)
	}
	return code, nil
}
