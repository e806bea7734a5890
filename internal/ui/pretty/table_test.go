package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

func TestRuleRows(t *testing.T) {
	parser := bbcode.New().Only(bbcode.RuleBold, bbcode.RuleItalic)

	rows := pretty.RuleRows(parser.Rules(), parser.ActiveRules())
	require.Len(t, rows, parser.Rules().Len())

	assert.Equal(t, bbcode.RuleBold, rows[0].Name)
	assert.True(t, rows[0].Active)
	assert.Equal(t, `<strong>$1</strong>`, rows[0].Replace)

	active := 0
	for _, row := range rows {
		if row.Active {
			active++
		}
	}
	assert.Equal(t, 2, active)
}

func TestRuleRows_NilActive(t *testing.T) {
	rows := pretty.RuleRows(bbcode.Builtin(), nil)
	for _, row := range rows {
		assert.True(t, row.Active, row.Name)
	}
}

func TestFormatRules(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)

	out := formatter.FormatRules([]pretty.RuleRow{
		{Name: "bold", Pattern: `\[B\](.*?)\[/B\]`, Replace: "<strong>$1</strong>", Active: true},
		{Name: "italic", Pattern: `\[I\](.*?)\[/I\]`, Replace: "<em>$1</em>"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[0], "PATTERN")
	assert.True(t, strings.HasPrefix(lines[2], "* bold"))
	assert.True(t, strings.HasPrefix(lines[3], "  italic"))
	assert.Equal(t, " 1 of 2 rules active (* = active)", lines[5])
}

func TestFormatRules_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	assert.Empty(t, formatter.FormatRules(nil))
}

func TestFormatRules_TruncatesToWidth(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60)

	out := formatter.FormatRules([]pretty.RuleRow{{
		Name:    "long",
		Pattern: strings.Repeat("p", 80),
		Replace: strings.Repeat("r", 80),
		Active:  true,
	}})

	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("p", 80))
}

func TestTerminalWidth_NonTTY(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, pretty.TerminalWidth(&bytes.Buffer{}))
}
