// Package pretty renders run outcomes, summaries and rule tables for the
// terminal with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI colors used by the color styles.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorCyan   = lipgloss.Color("14")
	colorSilver = lipgloss.Color("7")
	colorGray   = lipgloss.Color("8")
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Outcome of a file or a run.
	Error   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Outcome line parts.
	FilePath lipgloss.Style
	Arrow    lipgloss.Style

	// Rule table cells. Inactive covers a whole row.
	RuleName lipgloss.Style
	Pattern  lipgloss.Style
	Replace  lipgloss.Style
	Inactive lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode. Without color
// every style renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	style := func(fg lipgloss.Color) lipgloss.Style {
		if !colorEnabled || fg == "" {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(fg)
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Bold(true)
	}

	inactive := style(colorGray)
	if colorEnabled {
		inactive = inactive.Italic(true)
	}

	return &Styles{
		Error:          bold(style(colorRed)),
		Success:        bold(style(colorGreen)),
		Failure:        bold(style(colorRed)),
		FilePath:       bold(style("")),
		Arrow:          style(colorGray),
		RuleName:       bold(style(colorCyan)),
		Pattern:        style(colorSilver),
		Replace:        style(colorGreen),
		Inactive:       inactive,
		SummaryTitle:   bold(style("")),
		SummaryValue:   style(""),
		TableHeader:    bold(style(colorSilver)),
		TableSeparator: style(colorGray),
		Dim:            style(colorGray),
	}
}

// IsColorEnabled reports whether output to writer should be colored.
// Mode is "always", "never" or "auto" (anything else); auto colors only a
// terminal, and only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
