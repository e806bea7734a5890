// Package cli wires the gobbcode commands together.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	// Command name and usage line.
	Command lipgloss.Style

	// Section headings, including "Examples:" inside long descriptions.
	Heading lipgloss.Style

	// Subcommand names.
	Subcommand lipgloss.Style

	// Flag names (--flag, -f).
	Flag lipgloss.Style

	// Example invocations.
	Example lipgloss.Style

	// Flag types, defaults and example comments.
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:    plain,
			Heading:    plain,
			Subcommand: plain,
			Flag:       plain,
			Example:    plain,
			Dim:        plain,
		}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Example:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders Cobra help and usage text with HelpStyles.
type HelpFormatter struct {
	colorMode func() string
	styles    *HelpStyles
}

// NewHelpFormatter returns a formatter that asks colorMode for the color
// setting each time help is shown, so a parsed --color flag takes effect.
func NewHelpFormatter(colorMode func() string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode, styles: NewHelpStyles(false)}
}

func (h *HelpFormatter) restyle(out io.Writer) {
	h.styles = NewHelpStyles(pretty.IsColorEnabled(h.colorMode(), out))
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}{{$cmds := .Commands}}
{{- range $group := .Groups}}

{{ heading $group.Title }}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if not .AllChildCommandsHaveGroup}}

{{ heading (or (and .Groups "Additional Commands:") "Commands:") }}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ long . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    func(s string) string { return h.styles.Command.Render(s) },
		"heading":    func(s string) string { return h.styles.Heading.Render(s) },
		"subcommand": func(s string) string { return h.styles.Subcommand.Render(s) },
		"flags":      h.formatFlags,
		"long":       h.formatLong,
		"rpad":       rpad,
	}
}

// formatLong styles section headings in a long description ("Examples:",
// "Endpoints:") and the indented lines under them. A "#" starts a dimmed
// comment on an example line.
func (h *HelpFormatter) formatLong(text string) string {
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")
	inSection := false

	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		switch {
		case trimmed == "":
			inSection = false
		case !strings.HasPrefix(trimmed, " ") && strings.HasSuffix(trimmed, ":"):
			inSection = true
			trimmed = h.styles.Heading.Render(trimmed)
		case inSection && strings.HasPrefix(trimmed, "  "):
			trimmed = h.formatExample(trimmed)
		}
		lines[i] = trimmed
	}

	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) formatExample(line string) string {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	body := line[indent:]

	gap := strings.Index(body, "  ")
	if hash := strings.Index(body, " # "); hash >= 0 && (gap < 0 || hash < gap) {
		gap = hash
	}
	if gap < 0 {
		return line[:indent] + h.styles.Example.Render(body)
	}

	rest := body[gap:]
	comment := strings.TrimLeft(rest, " ")
	return line[:indent] + h.styles.Example.Render(body[:gap]) + rest[:len(rest)-len(comment)] + h.styles.Dim.Render(comment)
}

// formatFlags lists flags in a two-column layout with styled names.
func (h *HelpFormatter) formatFlags(flags *pflag.FlagSet) string {
	type flagLine struct {
		names string
		plain int
		usage string
	}

	var lines []flagLine
	width := 0

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		typeName, usage := pflag.UnquoteUsage(flag)

		names := h.styles.Flag.Render("--" + flag.Name)
		plain := len("--" + flag.Name)
		if flag.Shorthand != "" {
			names = h.styles.Flag.Render("-"+flag.Shorthand) + ", " + names
		} else {
			names = "    " + names
		}
		plain += 4
		if typeName != "" {
			names += " " + h.styles.Dim.Render(typeName)
			plain += 1 + len(typeName)
		}

		if def := flag.DefValue; def != "" && def != "false" && def != "0" && def != "[]" {
			usage += h.styles.Dim.Render(fmt.Sprintf(" (default %s)", def))
		}

		lines = append(lines, flagLine{names: names, plain: plain, usage: usage})
		width = max(width, plain)
	})

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  ")
		builder.WriteString(line.names)
		builder.WriteString(strings.Repeat(" ", width-line.plain+3))
		builder.WriteString(line.usage)
	}
	return builder.String()
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// hands both functions down to every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		h.restyle(command.OutOrStderr())
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		h.restyle(command.OutOrStdout())
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
