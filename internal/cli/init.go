package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
)

// Default file written by each init format.
//
//nolint:gochecknoglobals // lookup table
var initFileNames = map[string]string{
	"yaml":     ".gobbcode.yml",
	formatJSON: ".gobbcode.json",
}

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .gobbcode.yml",
		Long: `Write a project configuration file to the current directory. It selects
rules, adds custom rules, and sets output and server options.

Examples:
  gobbcode init                      Minimal .gobbcode.yml
  gobbcode init --full               Every built-in rule and setting, commented
  gobbcode init --format json        Write .gobbcode.json instead
  gobbcode init -o forum.yml         Write to another path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "replace an existing file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every built-in rule and setting")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "file to write (.gobbcode.yml or .gobbcode.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	target, ok := initFileNames[flags.format]
	if !ok {
		formats := make([]string, 0, len(initFileNames))
		for format := range initFileNames {
			formats = append(formats, format)
		}
		slices.Sort(formats)
		return fmt.Errorf("%w: unknown init format %q (want one of %v)", ErrUsage, flags.format, formats)
	}
	if flags.output != "" {
		target = flags.output
	}

	_, statErr := os.Stat(target)
	switch {
	case statErr == nil && !flags.force:
		return fmt.Errorf("%w: %s exists; pass --force to replace it", ErrUsage, target)
	case statErr == nil:
		logger.Warn("replacing existing file", logging.FieldPath, target)
	case !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("check %s: %w", target, statErr)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full, Format: flags.format})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	// Refuse to write a file the loader would reject.
	if _, err := config.FromYAML(content); err != nil {
		return fmt.Errorf("generated template does not load: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), target, content, fsutil.DefaultFileMode); err != nil {
		return err
	}

	logger.Info("wrote configuration", logging.FieldPath, target, logging.FieldFormat, flags.format)
	logger.Info("run 'gobbcode rules --active' to see the selected rules")

	return nil
}
