// Package styles holds the terminal styles shared by evminspect commands.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"evminspect/internal/disasm"
)

// Listing colours, kept in step with the colorize evm-dark style.
const (
	ListingText   = "#FFFFFF"
	ListingNumber = "#FF5F87"
	ListingFiller = "#7C9C9D"
	ListingLabel  = "#FFD700"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ListingText)).Bold(true)
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ListingLabel))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ListingNumber))
)

// Summary renders the decode statistics of one contract listing.
func Summary(contract, path string, st disasm.Stats) string {
	row := func(label string, v any) string {
		return fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-13s", label)), valueStyle.Render(fmt.Sprint(v)))
	}
	lines := []string{
		row("contract", contract),
		row("cells", st.Cells()),
		row("instructions", st.Instructions),
		row("data bytes", st.Data),
		row("gap fillers", fmt.Sprintf("%d (%d STOP)", st.Fillers(), st.StopFillers)),
		row("runs", st.Headers),
	}
	if path != "" {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-13s", "written to")), pathStyle.Render(path)))
	}
	if st.Cells() == 0 {
		lines = append(lines, warnStyle.Render("no memory stored for this contract"))
	}
	return strings.Join(lines, "\n")
}
