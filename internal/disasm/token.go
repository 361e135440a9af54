package disasm

import "fmt"

// Kind identifies what a Token stands for in the listing.
type Kind uint8

const (
	KindMnemonic Kind = iota
	KindRawByte
	KindGapFiller
	KindAddressHeader
)

func (k Kind) String() string {
	switch k {
	case KindMnemonic:
		return "mnemonic"
	case KindRawByte:
		return "raw"
	case KindGapFiller:
		return "filler"
	case KindAddressHeader:
		return "header"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Gap filler texts.
const (
	FillZero = "0"    // byte swallowed by a pending operand, assumed zero
	FillStop = "STOP" // unexplained byte, assumed to halt
)

// Token is one element of the listing.
type Token struct {
	Kind  Kind
	Text  string // mnemonic name or filler text
	Value byte   // raw byte value
	Addr  uint64 // header address
}

func Mnemonic(name string) Token { return Token{Kind: KindMnemonic, Text: name} }
func Raw(v byte) Token           { return Token{Kind: KindRawByte, Value: v} }
func Filler(text string) Token   { return Token{Kind: KindGapFiller, Text: text} }
func Header(addr uint64) Token   { return Token{Kind: KindAddressHeader, Addr: addr} }

func (t Token) String() string {
	switch t.Kind {
	case KindMnemonic:
		return t.Text
	case KindRawByte:
		return formatHex(uint64(t.Value))
	case KindGapFiller:
		return t.Text
	case KindAddressHeader:
		return "@" + formatHex(t.Addr)
	}
	return t.Kind.String()
}

// Stream is a linear sequence of tokens.
type Stream []Token

// Stats summarises a stream.
type Stats struct {
	Instructions int
	Data         int
	ZeroFillers  int
	StopFillers  int
	Headers      int
}

// Cells is the number of input cells the stream was decoded from.
func (s Stats) Cells() int { return s.Instructions + s.Data }

// Fillers is the total number of gap placeholders.
func (s Stats) Fillers() int { return s.ZeroFillers + s.StopFillers }

// Stats counts the tokens of each kind.
func (s Stream) Stats() Stats {
	var st Stats
	for _, t := range s {
		switch t.Kind {
		case KindMnemonic:
			st.Instructions++
		case KindRawByte:
			st.Data++
		case KindGapFiller:
			if t.Text == FillStop {
				st.StopFillers++
			} else {
				st.ZeroFillers++
			}
		case KindAddressHeader:
			st.Headers++
		}
	}
	return st
}
