package disasm

import (
	"math/rand/v2"
	"slices"
	"testing"

	"evminspect/internal/opcode"
)

func testTable() *opcode.Table {
	return opcode.MustNew(
		opcode.Entry{Value: 0x00, Name: "STOP"},
		opcode.Entry{Value: 0x60, Name: "PUSH1", Operands: 1},
		opcode.Entry{Value: 0x61, Name: "PUSH2", Operands: 2},
	)
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		name  string
		cells []Cell
		want  Stream
		text  string
	}{
		{
			name: "contiguous push and stop",
			cells: []Cell{
				{0, 0x60}, {1, 0x2a}, {2, 0x00},
			},
			want: Stream{Header(0), Mnemonic("PUSH1"), Raw(0x2a), Mnemonic("STOP")},
			text: "@0     PUSH1 0x2a STOP",
		},
		{
			// The gap is three addresses long but only Pending+1 = 1 filler
			// is written; the header covers the rest.
			name: "gap after complete instruction",
			cells: []Cell{
				{0, 0x60}, {1, 0x2a}, {5, 0x00},
			},
			want: Stream{
				Header(0), Mnemonic("PUSH1"), Raw(0x2a),
				Filler(FillStop), Header(5), Mnemonic("STOP"),
			},
			text: "@0     PUSH1 0x2a STOP\n@0x5     STOP",
		},
		{
			name: "opcode byte inside operand window",
			cells: []Cell{
				{0, 0x60}, {1, 0x60},
			},
			want: Stream{Header(0), Mnemonic("PUSH1"), Raw(0x60)},
			text: "@0     PUSH1 0x60",
		},
		{
			name: "gap swallowed by pending operand",
			cells: []Cell{
				{0, 0x61}, {1, 0xaa}, {3, 0x00},
			},
			want: Stream{Header(0), Mnemonic("PUSH2"), Raw(0xaa), Filler(FillZero), Mnemonic("STOP")},
			text: "@0     PUSH2 0xaa 0 STOP",
		},
		{
			name: "orphan byte before gap",
			cells: []Cell{
				{0, 0x01}, {3, 0x00},
			},
			want: Stream{Header(0), Raw(0x01), Filler(FillZero), Header(3), Mnemonic("STOP")},
			text: "@0     0x1 0\n@0x3     STOP",
		},
		{
			name: "zero operand renders as plain zero",
			cells: []Cell{
				{0, 0x60}, {1, 0x00},
			},
			want: Stream{Header(0), Mnemonic("PUSH1"), Raw(0x00)},
			text: "@0     PUSH1 0",
		},
		{
			name:  "first cell after address zero",
			cells: []Cell{{4, 0x00}},
			want:  Stream{Filler(FillStop), Header(4), Mnemonic("STOP")},
			text:  " STOP\n@0x4     STOP",
		},
		{
			name:  "first cell at address one",
			cells: []Cell{{1, 0x00}},
			want:  Stream{Filler(FillStop), Mnemonic("STOP")},
			text:  " STOP STOP",
		},
		{
			name:  "truncated instruction at end",
			cells: []Cell{{0, 0x61}, {1, 0x01}},
			want:  Stream{Header(0), Mnemonic("PUSH2"), Raw(0x01)},
			text:  "@0     PUSH2 0x1",
		},
		{
			name: "empty memory",
			want: nil,
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisassembleCells(testTable(), tt.cells)
			if !slices.Equal(got, tt.want) {
				t.Errorf("tokens = %v, want %v", got, tt.want)
			}
			if s := got.String(); s != tt.text {
				t.Errorf("text = %q, want %q", s, tt.text)
			}
		})
	}
}

func TestOrphanOnlyAffectsFirstFiller(t *testing.T) {
	// 0x01 is an orphan, PUSH2 then leaves two operands pending across the
	// gap. Only the first filler consults the orphan flag, so the byte after
	// the operands is still STOP.
	cells := []Cell{{0, 0x01}, {1, 0x61}, {5, 0x00}}
	got := DisassembleCells(testTable(), cells)
	want := Stream{
		Header(0), Raw(0x01), Mnemonic("PUSH2"),
		Filler(FillZero), Filler(FillZero), Filler(FillStop),
		Mnemonic("STOP"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestFillGap(t *testing.T) {
	for p := 0; p <= 3; p++ {
		for g := 1; g <= 6; g++ {
			s := State{Next: 10, Pending: p}
			got := s.FillGap(nil, 10+uint64(g))

			wantFillers := min(g, p+1)
			var fillers []Token
			headers := 0
			for _, tok := range got {
				switch tok.Kind {
				case KindGapFiller:
					fillers = append(fillers, tok)
				case KindAddressHeader:
					headers++
				}
			}
			if len(fillers) != wantFillers {
				t.Errorf("p=%d g=%d: %d fillers, want %d", p, g, len(fillers), wantFillers)
			}
			for j, f := range fillers {
				want := FillZero
				if j == p {
					want = FillStop
				}
				if f.Text != want {
					t.Errorf("p=%d g=%d: filler %d = %q, want %q", p, g, j, f.Text, want)
				}
			}
			wantHeaders := 0
			if g > p+1 {
				wantHeaders = 1
			}
			if headers != wantHeaders {
				t.Errorf("p=%d g=%d: %d headers, want %d", p, g, headers, wantHeaders)
			}
			if s.Pending != p-min(p, wantFillers) {
				t.Errorf("p=%d g=%d: pending after gap = %d", p, g, s.Pending)
			}
		}
	}
}

func TestFillGapOrphan(t *testing.T) {
	s := State{Next: 1, Orphan: true}
	got := s.FillGap(nil, 2)
	if !slices.Equal(got, Stream{Filler(FillZero)}) {
		t.Errorf("tokens = %v, want a single zero filler", got)
	}
	if s.Orphan {
		t.Error("orphan flag should be cleared once gap filling starts")
	}

	// No gap: nothing is written and the flag is kept.
	s = State{Next: 2, Orphan: true}
	if got := s.FillGap(nil, 2); len(got) != 0 {
		t.Errorf("tokens = %v, want none", got)
	}
	if !s.Orphan {
		t.Error("orphan flag should survive when there is no gap")
	}
}

func TestStepPendingNeverNegative(t *testing.T) {
	var s State
	tab := testTable()
	for i, v := range []byte{0x61, 0x01, 0x02, 0x03, 0xee} {
		s.Step(nil, Cell{Addr: uint64(i), Value: v}, tab)
		if s.Pending < 0 {
			t.Fatalf("pending went negative at cell %d", i)
		}
	}
	if s.Pending != 0 {
		t.Errorf("pending = %d, want 0", s.Pending)
	}
	if !s.Orphan {
		t.Error("unknown byte with nothing pending should set the orphan flag")
	}
}

func randomCells(r *rand.Rand, n int) []Cell {
	cells := make([]Cell, 0, n)
	addr := uint64(r.IntN(3))
	for range n {
		cells = append(cells, Cell{Addr: addr, Value: byte(r.IntN(256))})
		addr += 1 + uint64(r.IntN(4)/3*r.IntN(40))
	}
	return cells
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tab := opcode.EVM()
	for i := range 200 {
		cells := randomCells(r, 1+r.IntN(300))

		got := DisassembleCells(tab, cells)
		if st := got.Stats(); st.Cells() != len(cells) {
			t.Fatalf("run %d: %d instruction and data tokens for %d cells", i, st.Cells(), len(cells))
		}
		again := DisassembleCells(tab, cells)
		if !slices.Equal(got, again) {
			t.Fatalf("run %d: decoding is not deterministic", i)
		}
	}
}

func TestOperandsNeverDecoded(t *testing.T) {
	tab := opcode.EVM()
	for op := 0x60; op <= 0x7f; op++ {
		n := op - 0x60 + 1
		cells := []Cell{{0, byte(op)}}
		for k := 1; k <= n; k++ {
			cells = append(cells, Cell{uint64(k), 0x60})
		}
		got := DisassembleCells(tab, cells)
		if st := got.Stats(); st.Instructions != 1 || st.Data != n {
			t.Errorf("%#x: %d instructions, %d data, want 1 and %d", op, st.Instructions, st.Data, n)
		}
	}
}

func TestStats(t *testing.T) {
	s := Stream{
		Header(0), Mnemonic("PUSH1"), Raw(0x2a),
		Filler(FillStop), Filler(FillZero), Filler(FillZero), Header(9),
	}
	st := s.Stats()
	want := Stats{Instructions: 1, Data: 1, ZeroFillers: 2, StopFillers: 1, Headers: 2}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}
	if st.Fillers() != 3 || st.Cells() != 2 {
		t.Errorf("Fillers() = %d, Cells() = %d", st.Fillers(), st.Cells())
	}
}
