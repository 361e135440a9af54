package opcode

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/core/vm"
)

// EVM returns the table for the instruction set defined by go-ethereum's
// core/vm package. Only PUSH1..PUSH32 carry immediates.
var EVM = sync.OnceValue(func() *Table {
	var entries []Entry
	for v := 0; v < 256; v++ {
		op := vm.OpCode(v)
		name := op.String()
		if strings.HasPrefix(name, "opcode ") {
			// "opcode 0x.. not defined"
			continue
		}
		var operands int
		if op >= vm.PUSH1 && op <= vm.PUSH32 {
			operands = int(op-vm.PUSH1) + 1
		}
		entries = append(entries, Entry{Value: byte(v), Name: name, Operands: operands})
	}
	return MustNew(entries...)
})
