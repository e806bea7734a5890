package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration gobbcode would run with here, after layering
system, user, project and --config files with GOBBCODE_* variables.
A header lists the files that contributed.

Examples:
  gobbcode config
  GOBBCODE_CASE_INSENSITIVE=true gobbcode config
  gobbcode config --config forum.yml > merged.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, _, err := loadLayers(cmd, nil)
			if err != nil {
				return err
			}

			header := "# effective gobbcode configuration\n# sources: defaults"
			if len(result.LoadedFrom) > 0 {
				header += ", " + strings.Join(result.LoadedFrom, ", ")
			}

			content, err := result.Config.ToYAMLWithHeader(header)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(content); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			return nil
		},
	}
}
