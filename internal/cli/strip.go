package cli

import (
	"github.com/spf13/cobra"
)

func newStripCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "strip [paths...]",
		Short: "Strip BBCode tags down to plain text",
		Long: `Replace every known BBCode tag with its plain-text content.

Stripping always matches tags regardless of case and uses every rule in the
table, whatever --only or --except say in the configuration. Input and
output work like 'gobbcode render': stdin to stdout with no paths, or a
concurrent batch run over files and directories.

Examples:
  echo "[B]hi[/B] [URL='http://x.test']there[/URL]" | gobbcode strip
  gobbcode strip -w --out-dir plain forum/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags, modeStrip)
		},
	}

	addBatchFlags(cmd, flags)

	return cmd
}
