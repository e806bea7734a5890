package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// TextReporter writes converted documents to Writer and status to ErrorWriter.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	out    *bufio.Writer
	status *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    bufio.NewWriterSize(opts.Writer, bufWriterSize),
		status: bufio.NewWriterSize(opts.ErrorWriter, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.out.Flush(); err == nil {
			err = flushErr
		}
		if flushErr := r.status.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.status, r.styles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	headers := r.opts.ShowHeaders || countInMemory(result) > 1
	first := true

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return result.Stats.FilesErrored, err
		}

		if file.Error != nil || file.OutputPath != "" {
			fmt.Fprint(r.status, r.styles.FormatOutcome(file, r.opts.WorkingDir))
			continue
		}

		if headers {
			if !first {
				fmt.Fprintln(r.out)
			}
			fmt.Fprintln(r.out, r.styles.FormatFileHeader(file.Path, r.opts.WorkingDir))
		}
		first = false

		fmt.Fprint(r.out, file.Output)
		if !strings.HasSuffix(file.Output, "\n") {
			fmt.Fprintln(r.out)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.status, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FilesErrored, nil
}

func countInMemory(result *runner.Result) int {
	n := 0
	for _, file := range result.Files {
		if file.Error == nil && file.OutputPath == "" {
			n++
		}
	}
	return n
}
