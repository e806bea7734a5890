package pretty

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

// Table formatting constants.
const (
	activeSymbol     = "*"
	tablePadding     = 2
	tableColumnCount = 3 // NAME, PATTERN, REPLACE
	markerWidth      = 2
	minNameWidth     = 8
	minPatternWidth  = 20
	minReplaceWidth  = 16
	heavySeparator   = "="
	defaultTermWidth = 100
)

// RuleRow is a single row in the rule table.
type RuleRow struct {
	Name    string
	Pattern string
	Replace string
	Active  bool
}

// TableFormatter formats rule tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// RuleRows lists every rule in all, in table order, marking those
// present in active.
func RuleRows(all, active *bbcode.Table) []RuleRow {
	rows := make([]RuleRow, 0, all.Len())
	all.Each(func(name string, rule bbcode.Rule) {
		rows = append(rows, RuleRow{
			Name:    name,
			Pattern: rule.Pattern(),
			Replace: rule.Replace(),
			Active:  active == nil || active.Has(name),
		})
	})
	return rows
}

// FormatRules formats rows as a styled table followed by a legend.
func (t *TableFormatter) FormatRules(rows []RuleRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend(rows))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	name    int
	pattern int
	replace int
}

func (w columnWidths) total() int {
	return markerWidth + w.name + w.pattern + w.replace + tablePadding*tableColumnCount
}

// calculateColumnWidths sizes columns to content, then shrinks the
// replacement and pattern columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []RuleRow) columnWidths {
	widths := columnWidths{
		name:    minNameWidth,
		pattern: minPatternWidth,
		replace: minReplaceWidth,
	}

	for _, row := range rows {
		widths.name = max(widths.name, len(row.Name))
		widths.pattern = max(widths.pattern, len(row.Pattern))
		widths.replace = max(widths.replace, len(row.Replace))
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.replace = max(minReplaceWidth, widths.replace-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.pattern = max(minPatternWidth, widths.pattern-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf("%-*s%-*s  %-*s  %-*s",
		markerWidth, "",
		widths.name, "NAME",
		widths.pattern, "PATTERN",
		widths.replace, "REPLACE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, widths.total()))
}

func (t *TableFormatter) formatRow(row RuleRow, widths columnWidths) string {
	name := fmt.Sprintf("%-*s", widths.name, row.Name)
	pattern := fmt.Sprintf("%-*s", widths.pattern, truncateString(row.Pattern, widths.pattern))
	replace := truncateString(row.Replace, widths.replace)

	if !row.Active {
		return t.styles.Inactive.Render(fmt.Sprintf("%-*s%s  %s  %s", markerWidth, "", name, pattern, replace))
	}

	return fmt.Sprintf("%-*s%s  %s  %s",
		markerWidth, activeSymbol,
		t.styles.RuleName.Render(name),
		t.styles.Pattern.Render(pattern),
		t.styles.Replace.Render(replace),
	)
}

func (t *TableFormatter) formatLegend(rows []RuleRow) string {
	active := 0
	for _, row := range rows {
		if row.Active {
			active++
		}
	}
	legend := fmt.Sprintf(" %d of %d rules active (%s = active)", active, len(rows), activeSymbol)
	if t.colorEnabled && active < len(rows) {
		legend += ", " + t.styles.Inactive.Render("inactive")
	}
	return t.styles.Dim.Render(legend)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// TerminalWidth returns the width of the terminal behind writer, or a
// default when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
