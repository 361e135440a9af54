// Package disasm reconstructs an assembly-style listing from sparse contract
// memory. Cells arrive in ascending address order; the decoder tracks how many
// operand bytes the last instruction still owes and fills unallocated gaps
// with "0" or "STOP" placeholders.
package disasm

import (
	"iter"
	"slices"

	"evminspect/internal/opcode"
)

// Cell is one allocated memory address and the byte stored there.
type Cell struct {
	Addr  uint64
	Value byte
}

// Lookuper resolves a byte to an opcode entry. *opcode.Table implements it.
type Lookuper interface {
	Lookup(b byte) (opcode.Entry, bool)
}

// Disassemble decodes cells into a token stream. Cells must be sorted by
// address with no duplicates. The decode never fails: bytes that cannot be
// read as instructions come out as raw data.
func Disassemble(table Lookuper, cells iter.Seq[Cell]) Stream {
	var (
		s   State
		out Stream
	)
	for c := range cells {
		out = s.Step(out, c, table)
	}
	return out
}

// DisassembleCells is Disassemble over a slice.
func DisassembleCells(table Lookuper, cells []Cell) Stream {
	return Disassemble(table, slices.Values(cells))
}
