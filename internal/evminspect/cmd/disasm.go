package cmd

import (
	"github.com/spf13/cobra"

	"evminspect/internal/disasm"
	"evminspect/internal/memory"
)

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm [file]",
		Short: "Disassemble hex bytecode",
		Long: `Disassemble hex bytecode read from a file, or from stdin when no file is
given, and print the listing. Output is highlighted on a terminal unless
EVMINSPECT_NO_COLOR is set.`,
		Example: `
echo 0x6080604052 | evminspect disasm
evminspect disasm contract.hex
  `,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			code, err := readCodeFile(cmd, path)
			if err != nil {
				return err
			}
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}
			stream := disasm.DisassembleCells(table, memory.FromCode(code))
			return printListing(cmd.OutOrStdout(), stream)
		},
	}
	cmd.Flags().String("opcodes", "", "JSON opcode table replacing the built-in EVM table")
	return cmd
}
