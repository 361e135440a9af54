// Package colorize highlights EVM listings for terminal output.
package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
)

// Disabled reports whether EVMINSPECT_NO_COLOR turns highlighting off.
func Disabled() bool {
	return os.Getenv("EVMINSPECT_NO_COLOR") != ""
}

// getListingStyle returns the listing style with fallbacks
func getListingStyle() *chroma.Style {
	candidates := []string{"evm-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Listing applies syntax highlighting to listing text. On any failure the
// text is returned unchanged along with the error.
func Listing(text string) (string, error) {
	if Disabled() {
		return text, nil
	}

	iterator, err := EVMListing.Tokenise(nil, text)
	if err != nil {
		return text, err
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getListingStyle(), iterator); err != nil {
		return text, err
	}
	return buf.String(), nil
}
