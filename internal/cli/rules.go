package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/configloader"
	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
)

type rulesFlags struct {
	only       []string
	except     []string
	format     string
	activeOnly bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule table",
		Long: `List every rule in table order: built-ins first, then custom rules from
the configuration. Rules selected by only/except (from the configuration or
the flags below) are marked active.

Examples:
  gobbcode rules                        Styled table of all rules
  gobbcode rules --only b,i             Show which rules [B] and [I] select
  gobbcode rules --active --format json Active rules as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.only, "only", nil, "mark only these rules active (names or tags)")
	cmd.Flags().StringSliceVar(&flags.except, "except", nil, "mark these rules inactive (names or tags)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.activeOnly, "active", false, "list active rules only")

	return cmd
}

func runRules(cmd *cobra.Command, flags *rulesFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}

	cfg, _, err := loadConfig(cmd, &config.Config{Only: flags.only, Except: flags.except})
	if err != nil {
		return err
	}

	parser, err := configloader.NewParser(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	all, active := parser.Rules(), parser.ActiveRules()
	if flags.activeOnly {
		all = active
	}

	out := cmd.OutOrStdout()
	if flags.format == formatJSON {
		return outputRulesJSON(out, all, active)
	}

	colorEnabled := pretty.IsColorEnabled(colorMode(cmd), out)
	formatter := pretty.NewTableFormatter(pretty.NewStyles(colorEnabled), colorEnabled, pretty.TerminalWidth(out))

	rows := pretty.RuleRows(all, active)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "No rules selected")
		return err
	}

	_, err = io.WriteString(out, formatter.FormatRules(rows))
	return err
}

// outputRulesJSON writes rules as a JSON array in table order.
func outputRulesJSON(out io.Writer, all, active *bbcode.Table) error {
	infos := make([]ruleInfo, 0, all.Len())
	all.Each(func(name string, rule bbcode.Rule) {
		infos = append(infos, ruleInfo{
			Name:    name,
			Pattern: rule.Pattern(),
			Replace: rule.Replace(),
			Content: rule.Content(),
			Active:  active.Has(name),
		})
	})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
