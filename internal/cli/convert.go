package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/configloader"
	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/output"
	"github.com/yaklabco/gobbcode/pkg/reporter"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// convertMode distinguishes render from strip.
type convertMode int

const (
	modeRender convertMode = iota
	modeStrip
)

// convertFlags holds the flags shared by render and strip. Render-only
// flags are left at their zero values by strip.
type convertFlags struct {
	caseInsensitive bool
	only            []string
	except          []string
	format          string
	sanitize        bool
	annotateCode    bool

	write    bool
	outDir   string
	ext      string
	jobs     int
	ignore   []string
	report   string
	headers  bool
	summary  bool
	maxBytes int64
}

func addBatchFlags(cmd *cobra.Command, flags *convertFlags) {
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write each result to a file instead of stdout")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory for written files, mirroring the input layout")
	cmd.Flags().StringVar(&flags.ext, "ext", "", "extension of written files (default depends on --format)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.report, "report", "text", "report format: "+reportFormats())
	cmd.Flags().BoolVar(&flags.headers, "headers", false, "print a header before every converted file")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print run statistics to stderr")
	cmd.Flags().Int64Var(&flags.maxBytes, "max-bytes", 0, "skip sources larger than this many bytes (0 = no limit)")
}

// toConfig turns the flags the user actually set into a config layer.
// Unset flags stay zero so lower layers keep their values.
func (f *convertFlags) toConfig(cmd *cobra.Command, mode convertMode) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if mode == modeRender {
		if changed("case-insensitive") {
			cfg.CaseInsensitive = config.Bool(f.caseInsensitive)
		}
		cfg.Only = f.only
		cfg.Except = f.except

		if changed("format") {
			format, err := config.ParseOutputFormat(f.format)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUsage, err)
			}
			cfg.Output.Format = format
		}
		if changed("sanitize") {
			cfg.Output.Sanitize = config.Bool(f.sanitize)
		}
		if changed("annotate-code") {
			cfg.Output.AnnotateCode = config.Bool(f.annotateCode)
		}
	}

	cfg.Output.Extension = f.ext
	cfg.Ignore = f.ignore
	cfg.Jobs = f.jobs
	cfg.Write = f.write
	cfg.OutDir = f.outDir
	if changed("report") {
		cfg.Report = f.report
	}

	return cfg, nil
}

func reportFormats() string {
	names := make([]string, 0, 2)
	for _, format := range reporter.Formats() {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}

// isStream reports whether args ask for stdin to stdout conversion.
func isStream(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags, mode convertMode) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg, err := flags.toConfig(cmd, mode)
	if err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	if mode == modeStrip {
		cfg.Output.Format = config.FormatText
	}

	parser, err := configloader.NewParser(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	processor := output.New(output.OptionsFromConfig(cfg.Output))

	logger.Debug("configuration loaded",
		logging.FieldFormat, processor.Options().Format,
		logging.FieldCaseInsensitive, cfg.IsCaseInsensitive(),
		logging.FieldRules, parser.ActiveRules().Names(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldWrite, cfg.Write,
	)

	if isStream(args) {
		if cfg.Write || cfg.OutDir != "" {
			return fmt.Errorf("%w: --write and --out-dir need file or directory arguments", ErrUsage)
		}
		return convertStream(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), parser, processor, cfg.IsCaseInsensitive())
	}

	run := runner.New(parser, processor, cfg.IsCaseInsensitive())
	result, err := run.Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Write:        cfg.Write,
		OutDir:       cfg.OutDir,
		OutputExt:    cfg.Output.Extension,
		MaxBytes:     flags.maxBytes,
	})
	if err != nil {
		return fmt.Errorf("conversion run: %w", err)
	}

	logger.Debug("conversion finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	format, err := reporter.ParseFormat(cfg.Report)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: flags.summary,
		ShowHeaders: flags.headers,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	failed, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	if failed > 0 {
		return ErrConversionFailed
	}

	return nil
}

// convertStream converts all of in and writes the result to out with a
// trailing newline.
func convertStream(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	parser *bbcode.Parser,
	processor *output.Processor,
	caseInsensitive bool,
) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	converted, err := processor.Convert(ctx, parser, string(source), caseInsensitive)
	if err != nil {
		return fmt.Errorf("convert stdin: %w", err)
	}

	if !strings.HasSuffix(converted, "\n") {
		converted += "\n"
	}
	if _, err := io.WriteString(out, converted); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
