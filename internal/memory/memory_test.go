package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"evminspect/internal/disasm"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "with prefix", input: "0x602a00", want: []byte{0x60, 0x2a, 0x00}},
		{name: "without prefix", input: "602a00", want: []byte{0x60, 0x2a, 0x00}},
		{name: "whitespace and newline", input: " 60 2a\n00\n", want: []byte{0x60, 0x2a, 0x00}},
		{name: "empty", input: "", want: []byte{}},
		{name: "odd length", input: "0x602", wantErr: true},
		{name: "not hex", input: "0xzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCode(%q) expected an error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCode(%q) error: %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseCode(%q) = %x, want %x", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromCode(t *testing.T) {
	cells := FromCode([]byte{0x60, 0x2a})
	want := []disasm.Cell{{Addr: 0, Value: 0x60}, {Addr: 1, Value: 0x2a}}
	if !slices.Equal(cells, want) {
		t.Errorf("FromCode() = %v, want %v", cells, want)
	}
}

func TestReadDump(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []disasm.Cell
		wantErr error
	}{
		{
			name:  "unordered keys are sorted",
			input: `{"0x5": "0x00", "0x0": "0x60", "1": "42"}`,
			want: []disasm.Cell{
				{Addr: 0, Value: 0x60}, {Addr: 1, Value: 42}, {Addr: 5, Value: 0x00},
			},
		},
		{
			name:  "leading zeros",
			input: `{"0x0000": "0x0a"}`,
			want:  []disasm.Cell{{Addr: 0, Value: 0x0a}},
		},
		{
			name:    "value too large",
			input:   `{"0x0": "0x100"}`,
			wantErr: ErrValueRange,
		},
		{
			name:  "empty",
			input: `{}`,
			want:  []disasm.Cell{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadDump(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadDump() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadDump() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ReadDump() = %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range []string{`[1,2]`, `{"zz": "0x1"}`, `{"0x1": "zz"}`, `{"0x1": "1", "1": "2"}`} {
		if _, err := ReadDump(strings.NewReader(bad)); err == nil {
			t.Errorf("ReadDump(%s) expected an error", bad)
		}
	}
}

func TestStatic(t *testing.T) {
	contract := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	src := Static{
		contract: {{Addr: 3, Value: 0x00}, {Addr: 0, Value: 0x60}},
	}
	got, err := src.Cells(context.Background(), contract)
	if err != nil {
		t.Fatal(err)
	}
	want := []disasm.Cell{{Addr: 0, Value: 0x60}, {Addr: 3, Value: 0x00}}
	if !slices.Equal(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}

	got, err = src.Cells(context.Background(), common.Address{})
	if err != nil || len(got) != 0 {
		t.Errorf("unknown contract: Cells() = %v, %v", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Cells(ctx, contract); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: err = %v", err)
	}
}
