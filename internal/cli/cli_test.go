package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/internal/cli"
	"github.com/yaklabco/gobbcode/internal/configloader"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// isolate moves the test into an empty project so no outer .gobbcode.yml
// is picked up.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "gobbcode", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"render", "strip", "rules", "config", "init", "serve", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %q", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestRenderCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	renderCmd, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)

	for _, name := range []string{
		"case-insensitive", "only", "except", "format", "sanitize", "annotate-code",
		"write", "out-dir", "ext", "jobs", "ignore", "report",
	} {
		assert.NotNil(t, renderCmd.Flags().Lookup(name), "flag %q", name)
	}
	assert.Equal(t, "i", renderCmd.Flags().Lookup("case-insensitive").Shorthand)
	assert.Equal(t, "w", renderCmd.Flags().Lookup("write").Shorthand)

	stripCmd, _, err := cmd.Find([]string{"strip"})
	require.NoError(t, err)
	assert.Nil(t, stripCmd.Flags().Lookup("only"))
	assert.NotNil(t, stripCmd.Flags().Lookup("write"))
}

func TestRender_Stdin(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "default rules",
			stdin: "[B]hi[/B]",
			args:  []string{"render"},
			want:  "<strong>hi</strong>\n",
		},
		{
			name:  "dash reads stdin",
			stdin: "[I]hi[/I]\n",
			args:  []string{"render", "-"},
			want:  "<em>hi</em>\n",
		},
		{
			name:  "lowercase tags need -i",
			stdin: "[b]hi[/b]",
			args:  []string{"render"},
			want:  "[b]hi[/b]\n",
		},
		{
			name:  "case insensitive",
			stdin: "[b]hi[/b]",
			args:  []string{"render", "-i"},
			want:  "<strong>hi</strong>\n",
		},
		{
			name:  "only by tag alias",
			stdin: "[B]a[/B] [I]b[/I]",
			args:  []string{"render", "--only", "i"},
			want:  "[B]a[/B] <em>b</em>\n",
		},
		{
			name:  "except by rule name",
			stdin: "[B]a[/B] [I]b[/I]",
			args:  []string{"render", "--except", "bold"},
			want:  "[B]a[/B] <em>b</em>\n",
		},
		{
			name:  "text format strips",
			stdin: "[B]a[/B]",
			args:  []string{"render", "--format", "text"},
			want:  "a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRender_Markdown(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "[B]x[/B]", "render", "--format", "md")
	require.NoError(t, err)
	assert.Equal(t, "**x**", strings.TrimSpace(stdout))
}

func TestRender_InvalidFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "x", "render", "--format", "pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestStrip_Stdin(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "[b]bold[/b] and [URL='http://x.test']link[/URL]", "strip")
	require.NoError(t, err)
	assert.Equal(t, "bold and link\n", stdout)
}

func TestRender_WriteNeedsPaths(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "[B]x[/B]", "render", "-w")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUsage)
}

func TestRender_Files(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "forum", "a.bb"), "[B]a[/B]")
	writeFile(t, filepath.Join(dir, "forum", "nested", "b.bbcode"), "[I]b[/I]")
	writeFile(t, filepath.Join(dir, "forum", "notes.txt"), "[B]skip[/B]")

	stdout, _, err := execute(t, "", "render", "forum")
	require.NoError(t, err)

	assert.Contains(t, stdout, "<strong>a</strong>")
	assert.Contains(t, stdout, "<em>b</em>")
	assert.NotContains(t, stdout, "skip")
	assert.Contains(t, stdout, filepath.Join("forum", "a.bb"))
}

func TestRender_WriteOutDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "forum", "a.bb"), "[B]a[/B]")

	_, stderr, err := execute(t, "", "render", "-w", "--out-dir", "site", "--summary", "--color", "never", "forum")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "site", "forum", "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "<strong>a</strong>", string(content))
	assert.Contains(t, stderr, "1 file converted")

	_, _, err = execute(t, "", "strip", "-w", "--ext", ".plain", "forum")
	require.NoError(t, err)

	content, err = os.ReadFile(filepath.Join(dir, "forum", "a.plain"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
}

func TestRender_FileErrorsExitCode(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "big.bb"), strings.Repeat("[B]x[/B]", 10))

	_, stderr, err := execute(t, "", "render", "--max-bytes", "8", "big.bb")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrConversionFailed)
	assert.Equal(t, cli.ExitConversionErrors, cli.ExitCode(err))
	assert.Contains(t, stderr, "big.bb")
}

func TestRender_JSONReport(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "post.bb"), "[U]u[/U]")

	stdout, _, err := execute(t, "", "render", "--report", "json", "post.bb")
	require.NoError(t, err)

	var report struct {
		Files []struct {
			Path   string `json:"path"`
			Output string `json:"output"`
		} `json:"files"`
		Summary struct {
			FilesConverted int `json:"files_converted"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Files, 1)
	assert.Equal(t, "<u>u</u>", report.Files[0].Output)
	assert.Equal(t, 1, report.Summary.FilesConverted)
}

func TestRender_ProjectConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".gobbcode.yml"), `case_insensitive: true
rules:
  - name: spoiler
    pattern: '(?s)\[SPOILER\](.*?)\[/SPOILER\]'
    replace: '<details>$1</details>'
    content: '$1'
`)

	stdout, _, err := execute(t, "[b]x[/b] [spoiler]s[/spoiler]", "render")
	require.NoError(t, err)
	assert.Equal(t, "<strong>x</strong> <details>s</details>\n", stdout)

	stdout, _, err = execute(t, "[b]x[/b]", "render", "--case-insensitive=false")
	require.NoError(t, err)
	assert.Equal(t, "[b]x[/b]\n", stdout)

	stdout, _, err = execute(t, "[spoiler]s[/spoiler]", "strip")
	require.NoError(t, err)
	assert.Equal(t, "s\n", stdout)
}

func TestRender_ExplicitConfigErrors(t *testing.T) {
	dir := isolate(t)
	bad := filepath.Join(dir, "bad.yml")
	writeFile(t, bad, "output:\n  format: pdf\n")

	_, _, err := execute(t, "x", "--config", bad, "render")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

type jsonRule struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
}

func TestRules_JSON(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "", "rules", "--only", "b", "--format", "json")
	require.NoError(t, err)

	var rules []jsonRule
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.Len(t, rules, len(bbcode.BuiltinNames()))

	assert.Equal(t, jsonRule{
		Name:    "bold",
		Pattern: `(?s)\[B\](.*?)\[/B\]`,
		Replace: `<strong>$1</strong>`,
		Content: `$1`,
		Active:  true,
	}, rules[0])
	assert.False(t, rules[1].Active)

	stdout, _, err = execute(t, "", "rules", "--except", "url", "--active", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	assert.Len(t, rules, len(bbcode.BuiltinNames())-2)
	for _, rule := range rules {
		assert.NotContains(t, []string{"link", "namedlink"}, rule.Name)
	}
}

func TestRules_Table(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "", "--color", "never", "rules", "--only", "bold,italic")
	require.NoError(t, err)

	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "* bold")
	assert.Contains(t, stdout, fmt.Sprintf("2 of %d rules active", len(bbcode.BuiltinNames())))
}

func TestRules_InvalidFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "rules", "--format", "yaml")
	assert.ErrorIs(t, err, cli.ErrUsage)
}

func TestInit(t *testing.T) {
	dir := isolate(t)

	_, _, err := execute(t, "", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".gobbcode.yml"))

	_, _, err = execute(t, "", "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUsage)

	_, _, err = execute(t, "", "init", "--force", "--full")
	require.NoError(t, err)

	_, _, err = execute(t, "", "init", "--format", "json")
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, ".gobbcode.json"))
	require.NoError(t, err)
	assert.True(t, json.Valid(content))

	_, _, err = execute(t, "", "init", "--format", "toml")
	assert.ErrorIs(t, err, cli.ErrUsage)

	// The generated file loads cleanly.
	stdout, _, err := execute(t, "[B]x[/B]", "render")
	require.NoError(t, err)
	assert.Equal(t, "<strong>x</strong>\n", stdout)
}

func TestConfig_PrintsEffectiveLayers(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".gobbcode.yml"), "case_insensitive: true\nexcept: [image]\n")
	t.Setenv("GOBBCODE_OUTPUT_FORMAT", "markdown")

	stdout, _, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# sources: defaults, ")
	assert.Contains(t, stdout, ".gobbcode.yml")
	assert.Contains(t, stdout, "case_insensitive: true")
	assert.Contains(t, stdout, "format: markdown")
	assert.Contains(t, stdout, "- image")
}

func TestServe_StopsWhenContextDone(t *testing.T) {
	isolate(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := executeContext(t, ctx, "", "serve", "--addr", "127.0.0.1:0")
	assert.NoError(t, err)
}

func TestRender_CancelledBeforeConfigLoads(t *testing.T) {
	isolate(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := executeContext(t, ctx, "[B]x[/B]", "render")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrConfig)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, cli.ExitInterrupted, cli.ExitCode(err))
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test-version")
	assert.Contains(t, stdout, "test-commit")
}

func TestVersion_Short(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "test-version\n", stdout)
}

func TestRootHelp_Groups(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)

	conversion := strings.Index(stdout, "Conversion Commands:")
	project := strings.Index(stdout, "Project Commands:")
	additional := strings.Index(stdout, "Additional Commands:")
	require.NotEqual(t, -1, conversion)
	require.NotEqual(t, -1, project)
	require.NotEqual(t, -1, additional)
	assert.Less(t, conversion, project)
	assert.Contains(t, stdout[conversion:project], "render")
	assert.Contains(t, stdout[project:additional], "rules")
	assert.Contains(t, stdout[additional:], "version")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "render", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--case-insensitive")
	assert.Contains(t, stdout, "Examples:")
	assert.Contains(t, stdout, "Global Flags:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"conversion", fmt.Errorf("run: %w", cli.ErrConversionFailed), cli.ExitConversionErrors},
		{"usage", cli.ErrUsage, cli.ExitInvalidUsage},
		{"config", cli.ErrConfig, cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Field: "x"}, cli.ExitConfigError},
		{"interrupted", fmt.Errorf("load: %w", context.Canceled), cli.ExitInterrupted},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
