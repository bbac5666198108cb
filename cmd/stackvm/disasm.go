package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eth2030/stackvm/core/vm"
)

func newDisasmCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <hex>",
		Short: "Print the instructions of a program without running it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := decodeProgram(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return exitCode(1)
			}
			for _, ins := range vm.Disassemble(code) {
				line := ins.String()
				if !ins.Op.Valid() {
					line += " (not executable)"
				}
				if ins.JumpDest {
					line += " (jumpdest)"
				}
				fmt.Fprintln(stdout, line)
			}
			return nil
		},
	}
}
