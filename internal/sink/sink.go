// Package sink persists rendered listings.
package sink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"evminspect/internal/disasm"
)

// Ext is the extension of listing files.
const Ext = ".evm"

// File writes each contract's listing to <Dir>/<contract hex>.evm.
type File struct {
	Dir string
}

// Path returns the listing path for contract.
func (f File) Path(contract common.Address) string {
	return filepath.Join(f.Dir, common.Bytes2Hex(contract.Bytes())+Ext)
}

// Write renders stream and stores it, replacing any previous listing. It
// returns the written path.
func (f File) Write(contract common.Address, stream disasm.Stream) (string, error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating listing directory: %w", err)
	}
	text, err := stream.MarshalText()
	if err != nil {
		return "", err
	}
	path := f.Path(contract)
	if err := os.WriteFile(path, text, 0o644); err != nil {
		return "", fmt.Errorf("writing listing: %w", err)
	}
	slog.Debug("Wrote listing", "path", path, "bytes", len(text))
	return path, nil
}
