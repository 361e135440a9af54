package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/node"
	"github.com/spf13/cobra"

	"evminspect/internal/config"
	"evminspect/internal/disasm"
	"evminspect/internal/evminspect/log"
	"evminspect/internal/memory"
	"evminspect/internal/opcode"
	"evminspect/internal/ui/colorize"
)

// Version is stamped at build time.
var Version = "dev"

var (
	// ErrInvalidAddressLength is returned for contract keys that are not
	// 40 hex digits long.
	ErrInvalidAddressLength = errors.New("invalid address length")

	// ErrInvalidAddress is returned for contract keys with non-hex digits.
	ErrInvalidAddress = errors.New("invalid address")
)

// cfg is resolved from the config file and persistent flags before any
// command runs.
var cfg config.Config

var rootCmd = NewRootCmd()

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "evminspect",
		Short: "Disassemble contract memory into EVM listings",
		Long: `evminspect decodes a contract's stored memory into a linear,
assembly-style listing. Unallocated addresses are filled with "0" while an
instruction still expects operands and with "STOP" otherwise.`,
		Example: `
# Import a memory dump and write <data-dir>/<contract>.evm
evminspect import 1f9840a85d5af5bf1d1762f925bdaddc4201f984 dump.json
evminspect inspect 1f9840a85d5af5bf1d1762f925bdaddc4201f984

# Disassemble bytecode from stdin
echo 6080604052 | evminspect disasm
  `,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	root.PersistentFlags().StringP("data-dir", "D", "", "Custom data directory (default "+node.DefaultDataDir()+")")
	root.PersistentFlags().String("config", "", "Config file (default <data-dir>/"+config.FileName+")")
	root.PersistentFlags().BoolP("debug", "d", false, "Debug")

	root.AddCommand(
		newInspectCmd(),
		newImportCmd(),
		newDisasmCmd(),
		newContractsCmd(),
		newOpcodesCmd(),
		newSchemaCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	if configPath == "" {
		dir := dataDir
		if dir == "" {
			dir = node.DefaultDataDir()
		}
		configPath = filepath.Join(dir, config.FileName)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if debug {
		c.Debug = true
	}

	log.Setup(c.Debug)
	slog.Debug("Loaded config", "path", configPath, "dataDir", c.DataDir, "store", c.StorePath())
	cfg = c
	return nil
}

// parseContract validates a contract key: exactly 40 hex digits, with an
// optional 0x prefix.
func parseContract(s string) (common.Address, error) {
	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if len(digits) != 2*common.AddressLength {
		return common.Address{}, fmt.Errorf("%w: %q has %d hex digits, want %d", ErrInvalidAddressLength, s, len(digits), 2*common.AddressLength)
	}
	if !common.IsHexAddress(digits) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(digits), nil
}

// loadTable returns the opcode table named by --opcodes or the config file,
// or the built-in EVM table.
func loadTable(cmd *cobra.Command) (*opcode.Table, error) {
	path, _ := cmd.Flags().GetString("opcodes")
	if path == "" {
		path = cfg.Opcodes
	}
	if path == "" {
		return opcode.EVM(), nil
	}
	table, err := opcode.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded opcode table", "path", path, "opcodes", table.Len())
	return table, nil
}

// openStore opens the memory store at the configured location.
func openStore() (*memory.Store, error) {
	return memory.Open(cfg.StorePath())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// printListing writes stream to w followed by a newline, highlighted when w
// is a terminal.
func printListing(w io.Writer, stream disasm.Stream) error {
	text := stream.String()
	if isTerminal(w) && !colorize.Disabled() {
		if colored, err := colorize.Listing(text); err == nil {
			text = colored
		} else {
			slog.Debug("Highlighting failed", "error", err)
		}
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// osExit and closeLog are replaced in tests.
var (
	osExit   = os.Exit
	closeLog = log.Close
)

// Execute runs the command tree and exits non-zero on failure. The log file,
// if any, is closed before the process exits.
func Execute() {
	err := execute()
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintln(os.Stderr, "closing log:", cerr)
	}
	if err != nil {
		osExit(1)
	}
}

func execute() error {
	// Use cobra directly when output is piped to bypass fang's styling
	if !term.IsTerminal(os.Stdout.Fd()) {
		return rootCmd.Execute()
	}
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	)
}
