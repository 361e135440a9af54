package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// EVMDark is the listing style: mnemonics white, data pink, run headers gold.
var EVMDark = styles.Register(chroma.MustNewStyle("evm-dark", chroma.StyleEntries{
	chroma.Text:       "#FFFFFF",
	chroma.Background: "bg:#1e1e1e",

	chroma.Keyword:       "#FFFFFF", // Mnemonics
	chroma.KeywordPseudo: "#7C9C9D", // STOP and 0 gap fillers in teal

	chroma.LiteralNumber:    "#FF5F87", // Raw data in pink
	chroma.LiteralNumberHex: "#FF5F87",

	chroma.NameLabel: "#FFD700", // Run headers in gold
}))

// EVMListing tokenises the text produced by disasm.Stream. A bare "0" or
// "STOP" is ambiguous between a filler and real data, so both use the
// keyword colours of what they most often are.
var EVMListing = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "EVM listing",
		Aliases:   []string{"evm"},
		Filenames: []string{"*.evm"},
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `@(0x[0-9a-f]+|0)`, Type: chroma.NameLabel},
				{Pattern: `0x[0-9a-f]+\b`, Type: chroma.LiteralNumberHex},
				{Pattern: `\b0\b`, Type: chroma.KeywordPseudo},
				{Pattern: `\bSTOP\b`, Type: chroma.KeywordPseudo},
				{Pattern: `[A-Z][A-Z0-9]*`, Type: chroma.Keyword},
				{Pattern: `\s+`, Type: chroma.Text},
				{Pattern: `.`, Type: chroma.Text},
			},
		}
	},
))
