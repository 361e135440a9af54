// Package memory supplies contract memory to the disassembler. Every Source
// returns cells sorted by address with no duplicates.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"evminspect/internal/disasm"
)

// ErrValueRange is returned when a dump stores a value that does not fit in
// one byte.
var ErrValueRange = errors.New("memory value out of byte range")

// Source yields the memory of one contract.
type Source interface {
	Cells(ctx context.Context, contract common.Address) ([]disasm.Cell, error)
}

// FromCode lays code out contiguously from address zero.
func FromCode(code []byte) []disasm.Cell {
	cells := make([]disasm.Cell, len(code))
	for i, b := range code {
		cells[i] = disasm.Cell{Addr: uint64(i), Value: b}
	}
	return cells
}

// ParseCode decodes hex bytecode. The 0x prefix is optional and whitespace is
// ignored.
func ParseCode(text string) ([]byte, error) {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}
	code, err := hexutil.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("decoding bytecode: %w", err)
	}
	return code, nil
}

// ReadDump reads a JSON object mapping addresses to byte values, for example
// {"0x0": "0x60", "0x1": "0x80"}. Numbers may be hex or decimal strings.
func ReadDump(r io.Reader) ([]disasm.Cell, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding memory dump: %w", err)
	}
	cells := make([]disasm.Cell, 0, len(raw))
	seen := make(map[uint64]struct{}, len(raw))
	for k, v := range raw {
		addr, ok := math.ParseUint64(k)
		if !ok {
			return nil, fmt.Errorf("invalid memory address %q", k)
		}
		if _, dup := seen[addr]; dup {
			return nil, fmt.Errorf("memory address %#x given twice", addr)
		}
		seen[addr] = struct{}{}
		val, ok := math.ParseUint64(v)
		if !ok {
			return nil, fmt.Errorf("invalid value %q at %#x", v, addr)
		}
		if val > 0xff {
			return nil, fmt.Errorf("%w: %#x at %#x", ErrValueRange, val, addr)
		}
		cells = append(cells, disasm.Cell{Addr: addr, Value: byte(val)})
	}
	Sort(cells)
	return cells, nil
}

// Sort orders cells by address.
func Sort(cells []disasm.Cell) {
	slices.SortFunc(cells, func(a, b disasm.Cell) int {
		switch {
		case a.Addr < b.Addr:
			return -1
		case a.Addr > b.Addr:
			return 1
		}
		return 0
	})
}

// Static is an in-memory Source.
type Static map[common.Address][]disasm.Cell

// Cells returns a sorted copy of the contract's cells. Unknown contracts have
// empty memory.
func (s Static) Cells(ctx context.Context, contract common.Address) ([]disasm.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cells := slices.Clone(s[contract])
	Sort(cells)
	return cells, nil
}
