// Package reporter writes the results of a batch conversion.
package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/runner"
)

// Reporter writes one batch result. Report returns the number of files
// that failed to convert.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Format names a report layout.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// 64 KiB buffers in front of both writers.
const bufWriterSize = 64 * 1024

//nolint:gochecknoglobals // constructor table
var constructors = map[Format]func(Options) Reporter{
	FormatText: func(opts Options) Reporter { return NewTextReporter(opts) },
	FormatJSON: func(opts Options) Reporter { return NewJSONReporter(opts) },
}

// Formats lists the known report formats in sorted order.
func Formats() []Format {
	formats := make([]Format, 0, len(constructors))
	for format := range constructors {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

// ParseFormat maps a flag value to a Format. Empty means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if format := Format(name); format.IsValid() {
		return format, nil
	}
	names := make([]string, 0, len(constructors))
	for _, format := range Formats() {
		names = append(names, string(format))
	}
	return "", fmt.Errorf("unknown report format %q; valid formats: %s", name, strings.Join(names, ", "))
}

// IsValid reports whether f has a reporter.
func (f Format) IsValid() bool {
	_, ok := constructors[f]
	return ok
}

// Options configures a Reporter.
type Options struct {
	// Writer receives converted documents, or the whole JSON report.
	Writer io.Writer

	// ErrorWriter receives per-file errors, write notices and the summary.
	ErrorWriter io.Writer

	Format Format
	Color  string // auto, always or never

	ShowSummary bool

	// ShowHeaders puts a header line before each document. It is implied
	// when more than one document goes to Writer.
	ShowHeaders bool

	// Compact emits single-line JSON.
	Compact bool

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// New returns the Reporter for opts.Format, defaulting nil writers to
// stdout and stderr.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = os.Stderr
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	build, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported report format: %s", opts.Format)
	}
	return build(opts), nil
}
