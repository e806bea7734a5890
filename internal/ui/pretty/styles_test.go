package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
)

func allStyles(styles *pretty.Styles) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"Error":          styles.Error,
		"Success":        styles.Success,
		"Failure":        styles.Failure,
		"FilePath":       styles.FilePath,
		"Arrow":          styles.Arrow,
		"RuleName":       styles.RuleName,
		"Pattern":        styles.Pattern,
		"Replace":        styles.Replace,
		"Inactive":       styles.Inactive,
		"SummaryTitle":   styles.SummaryTitle,
		"SummaryValue":   styles.SummaryValue,
		"TableHeader":    styles.TableHeader,
		"TableSeparator": styles.TableSeparator,
		"Dim":            styles.Dim,
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may drop ANSI codes off a TTY, so only the text is checked.
	for name, style := range allStyles(styles) {
		assert.Contains(t, style.Render("x"), "x", name)
	}
	assert.True(t, styles.Error.GetBold())
	assert.True(t, styles.Inactive.GetItalic())
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	for name, style := range allStyles(pretty.NewStyles(false)) {
		assert.Equal(t, "test", style.Render("test"), name)
		assert.False(t, style.GetBold(), name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffer is not a terminal")
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode behaves like auto")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode behaves like auto")
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always ignores NO_COLOR")
}
