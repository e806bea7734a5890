package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted, 2 written, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to convert") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s converted", stats.FilesConverted, plural(stats.FilesConverted))),
	}

	if stats.FilesWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d written", stats.FilesWritten))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", s.SummaryValue.Render(strconv.Itoa(value))))
	}

	row("Files discovered", stats.FilesDiscovered)
	row("Files converted", stats.FilesConverted)
	if stats.FilesWritten > 0 {
		row("Files written", stats.FilesWritten)
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", stats.FilesUnchanged)
	}
	if stats.FilesErrored > 0 {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", "Files failed:", s.Failure.Render(strconv.Itoa(stats.FilesErrored))))
	}

	builder.WriteString("\n")
	row("Bytes in", stats.BytesIn)
	row("Bytes out", stats.BytesOut)
	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Conversion finished with errors"))
	} else {
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
