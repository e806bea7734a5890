package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects what a converted document looks like.
type OutputFormat string

const (
	// FormatHTML is the rendered HTML, the engine's native output.
	FormatHTML OutputFormat = "html"
	// FormatMarkdown converts the rendered HTML to CommonMark.
	FormatMarkdown OutputFormat = "markdown"
	// FormatText strips markup down to the tag contents.
	FormatText OutputFormat = "text"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatMarkdown, FormatText:
		return true
	default:
		return false
	}
}

// Extension returns the file extension used when writing this format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return ".html"
	}
}

// ParseOutputFormat parses a format name. The empty string means html,
// and "md" is accepted for markdown.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected html, markdown, or text)", s)
	}
}
