package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"evminspect/internal/disasm"
	"evminspect/internal/memory"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <contract> <file>",
		Short: "Load contract memory into the local store",
		Long: `Replace the stored memory of a contract with the contents of a JSON dump
({"0x0": "0x60", ...}) or, with --code, hex bytecode laid out from address 0.
Use - to read from stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := parseContract(args[0])
			if err != nil {
				return err
			}
			asCode, _ := cmd.Flags().GetBool("code")

			var cells []disasm.Cell
			if asCode {
				code, err := readCodeFile(cmd, args[1])
				if err != nil {
					return err
				}
				cells = memory.FromCode(code)
			} else {
				cells, err = readDumpFile(cmd, args[1])
				if err != nil {
					return err
				}
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Put(contract, cells); err != nil {
				return err
			}
			slog.Info("Imported memory", "contract", contract.Hex(), "cells", len(cells), "store", cfg.StorePath())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cells for %s\n", len(cells), contract.Hex())
			return nil
		},
	}
	cmd.Flags().Bool("code", false, "Treat the file as hex bytecode")
	return cmd
}

// readCodeFile reads hex bytecode from path, or from the command's stdin
// when path is "-".
func readCodeFile(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading bytecode: %w", err)
	}
	return memory.ParseCode(string(data))
}
