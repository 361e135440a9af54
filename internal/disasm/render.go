package disasm

import (
	"io"
	"strconv"
)

// headerIndent separates an address header from the first token of its run.
const headerIndent = "    "

// formatHex renders n the way the listing always has: lowercase with a 0x
// prefix, except zero which is plain "0".
func formatHex(n uint64) string {
	return string(appendHex(nil, n))
}

func appendHex(b []byte, n uint64) []byte {
	if n == 0 {
		return append(b, '0')
	}
	b = append(b, "0x"...)
	return strconv.AppendUint(b, n, 16)
}

// AppendText appends the listing text of s to b.
func (s Stream) AppendText(b []byte) ([]byte, error) {
	for i, t := range s {
		switch t.Kind {
		case KindMnemonic, KindGapFiller:
			b = append(b, ' ')
			b = append(b, t.Text...)
		case KindRawByte:
			b = append(b, ' ')
			b = appendHex(b, uint64(t.Value))
		case KindAddressHeader:
			if i > 0 {
				b = append(b, '\n')
			}
			b = append(b, '@')
			b = appendHex(b, t.Addr)
			b = append(b, headerIndent...)
		}
	}
	return b, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Stream) MarshalText() ([]byte, error) {
	return s.AppendText(nil)
}

// WriteTo writes the listing text to w.
func (s Stream) WriteTo(w io.Writer) (int64, error) {
	b, _ := s.AppendText(nil)
	n, err := w.Write(b)
	return int64(n), err
}

func (s Stream) String() string {
	b, _ := s.AppendText(nil)
	return string(b)
}
