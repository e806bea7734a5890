package cli

import (
	"github.com/spf13/cobra"
)

func newRenderCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render BBCode to HTML, Markdown, or text",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags, modeRender)
		},
	}

	cmd.Flags().BoolVarP(&flags.caseInsensitive, "case-insensitive", "i", false, "match tags regardless of case")
	cmd.Flags().StringSliceVar(&flags.only, "only", nil, "apply only these rules (names or tags)")
	cmd.Flags().StringSliceVar(&flags.except, "except", nil, "skip these rules (names or tags)")
	cmd.Flags().StringVar(&flags.format, "format", "html", "output format: html, markdown, text")
	cmd.Flags().BoolVar(&flags.sanitize, "sanitize", false, "restrict HTML to the elements the built-in rules emit")
	cmd.Flags().BoolVar(&flags.annotateCode, "annotate-code", false, "add language-* classes to code blocks")
	addBatchFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render BBCode using the active rule set.

With no paths, or with "-", BBCode is read from stdin and the result is
written to stdout. Otherwise every .bbcode and .bb file under the given
paths is converted concurrently. Results go to stdout unless --write is
set, in which case each file is written next to its source (or under
--out-dir) with an extension matching --format.

Examples:
  echo '[B]hi[/B]' | gobbcode render          # <strong>hi</strong>
  gobbcode render -i post.bb                   # Match [b] as well as [B]
  gobbcode render --only bold,url post.bb      # Apply two rules only
  gobbcode render --format markdown forum/     # Convert a directory
  gobbcode render -w --out-dir site forum/     # Write forum/**/*.html
  gobbcode render --report json -w forum/      # Machine-readable report`
