package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"evminspect/internal/disasm"
	"evminspect/internal/evminspect/styles"
	"evminspect/internal/memory"
	"evminspect/internal/sink"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <contract>",
		Short: "Dump a contract's memory to <data-dir>/<contract>.evm",
		Long: `Disassemble the memory of a contract and write the listing to
<data-dir>/<contract>.evm. Memory comes from the local store unless --dump or
--rpc name another source.`,
		Example: `
# From the local memory store
evminspect inspect 1f9840a85d5af5bf1d1762f925bdaddc4201f984

# Deployed code from a node, printed instead of written
evminspect inspect --rpc http://localhost:8545 --stdout 0x1f9840a85d5af5bf1d1762f925bdaddc4201f984
  `,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().String("rpc", "", "Fetch deployed code from this JSON-RPC endpoint")
	cmd.Flags().String("dump", "", "Read memory from a JSON dump instead of the store")
	cmd.Flags().String("opcodes", "", "JSON opcode table replacing the built-in EVM table")
	cmd.Flags().Bool("stdout", false, "Print the listing instead of writing it")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print the summary")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	contract, err := parseContract(args[0])
	if err != nil {
		return err
	}
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}

	src, closeSource, err := openSource(cmd, contract)
	if err != nil {
		return err
	}
	defer closeSource()

	cells, err := src.Cells(cmd.Context(), contract)
	if err != nil {
		return err
	}
	stream := disasm.DisassembleCells(table, cells)
	st := stream.Stats()
	slog.Debug("Disassembled contract", "contract", contract.Hex(), "cells", len(cells), "tokens", len(stream))

	toStdout, _ := cmd.Flags().GetBool("stdout")
	quiet, _ := cmd.Flags().GetBool("quiet")

	var path string
	summaryOut := cmd.OutOrStdout()
	if toStdout {
		if err := printListing(cmd.OutOrStdout(), stream); err != nil {
			return err
		}
		summaryOut = cmd.ErrOrStderr()
	} else {
		path, err = sink.File{Dir: cfg.DataDir}.Write(contract, stream)
		if err != nil {
			return err
		}
		slog.Info("Wrote listing", "contract", contract.Hex(), "path", path)
	}

	if !quiet {
		fmt.Fprintln(summaryOut, styles.Summary(common.Bytes2Hex(contract.Bytes()), path, st))
	}
	return nil
}

// openSource picks the memory source: --dump, then --rpc (or the configured
// endpoint), then the local store.
func openSource(cmd *cobra.Command, contract common.Address) (memory.Source, func(), error) {
	dump, _ := cmd.Flags().GetString("dump")
	rpcURL, _ := cmd.Flags().GetString("rpc")
	if rpcURL == "" {
		rpcURL = cfg.RPC
	}

	switch {
	case dump != "":
		cells, err := readDumpFile(cmd, dump)
		if err != nil {
			return nil, nil, err
		}
		return memory.Static{contract: cells}, func() {}, nil

	case rpcURL != "":
		r, err := memory.DialRPC(cmd.Context(), rpcURL)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil

	default:
		s, err := openStore()
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				slog.Warn("Closing memory store", "error", err)
			}
		}, nil
	}
}

// readDumpFile reads a JSON memory dump from path, or from the command's
// stdin when path is "-".
func readDumpFile(cmd *cobra.Command, path string) ([]disasm.Cell, error) {
	r := cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening dump: %w", err)
		}
		defer f.Close()
		r = f
	}
	return memory.ReadDump(r)
}
