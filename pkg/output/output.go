// Package output post-processes rendered BBCode: language classes on code
// blocks, HTML sanitizing, and conversion to Markdown.
package output

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// Options selects the post-processing steps.
type Options struct {
	// Format of the final document. Empty means html.
	Format config.OutputFormat

	// Sanitize restricts the HTML to what the built-in rules emit.
	Sanitize bool

	// AnnotateCode adds a language-* class to <code> elements.
	AnnotateCode bool
}

// OptionsFromConfig reads Options from the output section of a config.
func OptionsFromConfig(cfg config.OutputConfig) Options {
	return Options{
		Format:       cfg.Format,
		Sanitize:     config.BoolValue(cfg.Sanitize),
		AnnotateCode: config.BoolValue(cfg.AnnotateCode),
	}
}

// Processor turns engine output into the configured format.
// It is safe for concurrent use.
type Processor struct {
	opts   Options
	policy *bluemonday.Policy
}

// New creates a Processor.
func New(opts Options) *Processor {
	if opts.Format == "" {
		opts.Format = config.FormatHTML
	}
	return &Processor{
		opts:   opts,
		policy: Policy(),
	}
}

// Options returns the processor's options.
func (p *Processor) Options() Options {
	return p.opts
}

// Convert runs source through parser and post-processes the result.
// The text format strips tags instead of rendering them.
func (p *Processor) Convert(ctx context.Context, parser *bbcode.Parser, source string, caseInsensitive bool) (string, error) {
	if p.opts.Format == config.FormatText {
		return parser.StripContext(ctx, source)
	}

	rendered, err := parser.RenderContext(ctx, source, caseInsensitive)
	if err != nil {
		return "", err
	}
	return p.Process(ctx, rendered)
}

// Process applies annotation, sanitizing and format conversion, in that
// order, to rendered HTML. Text output is returned unchanged.
func (p *Processor) Process(ctx context.Context, rendered string) (string, error) {
	if p.opts.Format == config.FormatText {
		return rendered, nil
	}

	out := rendered

	if p.opts.AnnotateCode {
		annotated, err := AnnotateCode(out)
		if err != nil {
			return "", fmt.Errorf("annotate code: %w", err)
		}
		out = annotated
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if p.opts.Sanitize {
		out = p.policy.Sanitize(out)
	}

	if p.opts.Format == config.FormatMarkdown {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		md, err := ToMarkdown(out)
		if err != nil {
			return "", fmt.Errorf("convert to markdown: %w", err)
		}
		out = md
	}

	return out, nil
}
