package opcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
)

// byteValue accepts a JSON number or a string such as "0x60" or "96".
type byteValue byte

func (b *byteValue) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(data, `"`))
	v, ok := math.ParseUint64(text)
	if !ok || v > 0xff {
		return fmt.Errorf("opcode value %s out of byte range", data)
	}
	*b = byteValue(v)
	return nil
}

type jsonEntry struct {
	Value    byteValue `json:"value"`
	Name     string    `json:"name"`
	Operands int       `json:"operands"`
}

// Load reads a table from a JSON array of
// {"value": "0x60", "name": "PUSH1", "operands": 1} objects.
func Load(r io.Reader) (*Table, error) {
	var raw []jsonEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding opcode table: %w", err)
	}
	entries := make([]Entry, len(raw))
	for i, e := range raw {
		entries[i] = Entry{Value: byte(e.Value), Name: e.Name, Operands: e.Operands}
	}
	return New(entries...)
}

// LoadFile reads a JSON table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening opcode table: %w", err)
	}
	defer f.Close()
	return Load(f)
}
