package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
	"github.com/yaklabco/gobbcode/pkg/output"
)

// Runner converts files with a shared rule configuration.
type Runner struct {
	// Parser is the configured engine. Each worker converts with its own
	// clone, so Parser is never mutated by a run.
	Parser *bbcode.Parser

	// Processor post-processes each conversion.
	Processor *output.Processor

	// CaseInsensitive selects case-insensitive matching.
	CaseInsensitive bool
}

// New creates a Runner.
func New(parser *bbcode.Parser, processor *output.Processor, caseInsensitive bool) *Runner {
	return &Runner{
		Parser:          parser,
		Processor:       processor,
		CaseInsensitive: caseInsensitive,
	}
}

// Run discovers files under opts.Paths and converts them concurrently.
// Outcomes are returned in path order regardless of completion order.
// Per-file failures are recorded on the outcome; only discovery errors and
// cancellation are returned as errors.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("converting",
		logging.FieldFiles, len(files), logging.FieldJobs, jobs, logging.FieldWrite, opts.Write)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, r.Parser.Clone(), workDir, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts files from workCh with its own parser.
func (r *Runner) worker(
	ctx context.Context,
	parser *bbcode.Parser,
	workDir string,
	opts Options,
	workCh <-chan string,
	outCh chan<- FileOutcome,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.convertFile(ctx, parser, workDir, opts, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) convertFile(ctx context.Context, parser *bbcode.Parser, workDir string, opts Options, path string) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}
	defer func() { outcome.Duration = time.Since(start) }()

	source, err := fsutil.ReadSource(ctx, path, opts.MaxBytes)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.BytesIn = len(source)

	converted, err := r.Processor.Convert(ctx, parser, string(source), r.CaseInsensitive)
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}
	outcome.BytesOut = len(converted)

	if !opts.Write {
		outcome.Output = converted
		return outcome
	}

	outDir := opts.OutDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	outcome.OutputPath = fsutil.OutputPath(path, workDir, outDir, r.outputExt(opts))
	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.OutputPath, []byte(converted), 0)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.OutputPath, err)
		return outcome
	}
	outcome.Written = written
	outcome.Unchanged = !written

	return outcome
}

func (r *Runner) outputExt(opts Options) string {
	if opts.OutputExt != "" {
		return opts.OutputExt
	}
	return r.Processor.Options().Format.Extension()
}
