// Package opcode holds the immutable byte-to-instruction table consulted by
// the disassembler. A table maps a one-byte opcode value to its mnemonic and
// the number of immediate operand bytes that follow it verbatim.
package opcode

import (
	"errors"
	"fmt"
)

// MaxOperands is the widest immediate an instruction may carry (PUSH32).
const MaxOperands = 32

var (
	// ErrDuplicate is returned when two entries claim the same byte value.
	ErrDuplicate = errors.New("duplicate opcode value")

	// ErrInvalidEntry is returned for entries with an empty name or an
	// operand count outside [0, MaxOperands].
	ErrInvalidEntry = errors.New("invalid opcode entry")
)

// Entry describes one defined opcode.
type Entry struct {
	Value    byte
	Name     string
	Operands int
}

func (e Entry) String() string {
	return fmt.Sprintf("0x%02x %s/%d", e.Value, e.Name, e.Operands)
}

// Table is a fixed lookup from byte value to Entry. The zero value is an
// empty table in which every byte is undefined.
type Table struct {
	entries [256]Entry
	defined [256]bool
	n       int
}

// New builds a table from the given entries. Every value may appear at most
// once.
func New(entries ...Entry) (*Table, error) {
	t := new(Table)
	for _, e := range entries {
		if e.Name == "" || e.Operands < 0 || e.Operands > MaxOperands {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, e)
		}
		if t.defined[e.Value] {
			return nil, fmt.Errorf("%w: 0x%02x is both %s and %s", ErrDuplicate, e.Value, t.entries[e.Value].Name, e.Name)
		}
		t.entries[e.Value] = e
		t.defined[e.Value] = true
		t.n++
	}
	return t, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(entries ...Entry) *Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the entry for b, matched by exact value.
func (t *Table) Lookup(b byte) (Entry, bool) {
	if t == nil || !t.defined[b] {
		return Entry{}, false
	}
	return t.entries[b], true
}

// Len returns the number of defined opcodes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Entries returns the defined entries in ascending value order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, t.n)
	for v := range t.entries {
		if t.defined[v] {
			out = append(out, t.entries[v])
		}
	}
	return out
}
