package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"evminspect/internal/disasm"
)

// RPC reads deployed contract code from a JSON-RPC endpoint at the latest
// block. The code is treated as contiguous memory starting at zero.
type RPC struct {
	client *ethclient.Client
	url    string
}

// DialRPC connects to the endpoint at url.
func DialRPC(ctx context.Context, url string) (*RPC, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return NewRPC(client, url), nil
}

// NewRPC wraps an existing client. url is only used in log output.
func NewRPC(client *ethclient.Client, url string) *RPC {
	return &RPC{client: client, url: url}
}

// Cells fetches the code of contract.
func (r *RPC) Cells(ctx context.Context, contract common.Address) ([]disasm.Cell, error) {
	code, err := r.client.CodeAt(ctx, contract, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching code of %s: %w", contract.Hex(), err)
	}
	slog.Debug("Fetched contract code", "contract", contract.Hex(), "url", r.url, "bytes", len(code))
	return FromCode(code), nil
}

// Close shuts down the client connection.
func (r *RPC) Close() {
	r.client.Close()
}
