package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/logging"
)

const appName = "gobbcode"

// Command group IDs shown in root help.
const (
	groupConvert = "convert"
	groupInspect = "inspect"
)

// BuildInfo is stamped into main at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	debug  bool
	config string
	color  string
}

// NewRootCommand assembles the gobbcode command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Render and strip BBCode with a configurable rule table",
		Long: `gobbcode turns forum-style BBCode into HTML, Markdown, or plain text.

Every tag is a named rule: a pattern, an HTML replacement, and a plain-text
replacement. The built-in table covers the common tags ([B], [URL], [IMG],
[LIST], [CODE] and more). Narrow it with --only and --except, or add custom
rules in .gobbcode.yml. Files are converted concurrently, and the same engine
is available over HTTP with 'gobbcode serve'.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	global := rootCmd.PersistentFlags()
	global.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	global.StringVar(&flags.config, "config", "", "path to config file")
	global.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupConvert, Title: "Conversion Commands:"},
		&cobra.Group{ID: groupInspect, Title: "Project Commands:"},
	)
	addToGroup(rootCmd, groupConvert, newRenderCommand(), newStripCommand(), newServeCommand(info))
	addToGroup(rootCmd, groupInspect, newRulesCommand(), newConfigCommand(), newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(func() string { return flags.color }).ApplyToCommand(rootCmd)

	return rootCmd
}

func addToGroup(parent *cobra.Command, groupID string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.GroupID = groupID
		parent.AddCommand(cmd)
	}
}
