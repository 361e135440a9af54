package disasm

// State is the decode state carried from one cell to the next. The zero value
// is the state before the first cell.
type State struct {
	Next    uint64 // address that would continue the current run
	Pending int    // operand bytes the last instruction still expects
	Orphan  bool   // last raw byte was not an operand of any instruction
}

// FillGap appends the placeholders for the unallocated addresses between
// s.Next and addr. At most Pending+1 fillers are written: pending operands
// become "0", the byte after them "STOP". An orphan byte before the gap turns
// the first filler into "0". If the gap is longer than the fillers cover, a
// header for addr starts a new run.
func (s *State) FillGap(dst Stream, addr uint64) Stream {
	if addr <= s.Next {
		return dst
	}
	j := 0
	for ; j <= s.Pending && s.Next+uint64(j) < addr; j++ {
		if j < s.Pending || s.Orphan {
			dst = append(dst, Filler(FillZero))
		} else {
			dst = append(dst, Filler(FillStop))
		}
		s.Orphan = false
	}
	s.Pending -= min(s.Pending, j)
	if s.Next+uint64(j) < addr {
		dst = append(dst, Header(addr))
	}
	return dst
}

// Step decodes one cell and appends its tokens to dst.
func (s *State) Step(dst Stream, c Cell, table Lookuper) Stream {
	switch {
	case c.Addr > s.Next:
		dst = s.FillGap(dst, c.Addr)
	case s.Next == 0:
		dst = append(dst, Header(c.Addr))
	}

	entry, ok := table.Lookup(c.Value)
	if s.Pending > 0 || !ok {
		// Operand bytes are never reinterpreted as opcodes.
		if s.Pending > 0 {
			s.Pending--
		} else {
			s.Orphan = true
		}
		dst = append(dst, Raw(c.Value))
	} else {
		dst = append(dst, Mnemonic(entry.Name))
		s.Pending = entry.Operands
	}

	s.Next = c.Addr + 1
	return dst
}
