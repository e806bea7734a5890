package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
	"github.com/yaklabco/gobbcode/pkg/output"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

func newRunner(format config.OutputFormat) *runner.Runner {
	return runner.New(bbcode.New(), output.New(output.Options{Format: format}), false)
}

func TestRun_InMemory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bbcode"), []byte("[I]two[/I]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bbcode"), []byte("[B]one[/B]"), 0o644))

	result, err := newRunner(config.FormatHTML).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       4,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, filepath.Join(dir, "a.bbcode"), result.Files[0].Path)
	assert.Equal(t, "<strong>one</strong>", result.Files[0].Output)
	assert.Equal(t, "<em>two</em>", result.Files[1].Output)
	assert.Empty(t, result.Files[0].OutputPath)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 2,
		FilesConverted:  2,
		BytesIn:         len("[B]one[/B]") + len("[I]two[/I]"),
		BytesOut:        len("<strong>one</strong>") + len("<em>two</em>"),
	}, result.Stats)
	assert.False(t, result.HasErrors())
}

func TestRun_WritesMirroredOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "forum/post.bbcode")

	opts := runner.Options{
		WorkingDir: dir,
		Write:      true,
		OutDir:     "out",
	}
	r := newRunner(config.FormatText)

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, filepath.Join(dir, "out", "forum", "post.txt"), outcome.OutputPath)
	assert.True(t, outcome.Written)
	assert.Empty(t, outcome.Output)

	content, err := os.ReadFile(outcome.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "forum/post.bbcode", string(content))

	// A second run finds identical output already in place.
	result, err = r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
}

func TestRun_OutputExtOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "post.bb")

	result, err := newRunner(config.FormatHTML).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Write:      true,
		OutputExt:  ".htm",
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(dir, "post.htm"), result.Files[0].OutputPath)
	assert.FileExists(t, filepath.Join(dir, "post.htm"))
}

func TestRun_PerFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "small.bbcode")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "large.bbcode"), make([]byte, 128), 0o644))

	result, err := newRunner(config.FormatHTML).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		MaxBytes:   64,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.ErrorIs(t, result.Files[0].Error, fsutil.ErrTooLarge)
	assert.NoError(t, result.Files[1].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesConverted)
	assert.True(t, result.HasErrors())
}

func TestRun_LeavesParserUntouched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.bbcode", "b.bbcode", "c.bbcode")

	parser := bbcode.New().Only(bbcode.RuleBold)
	r := runner.New(parser, output.New(output.Options{}), false)

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 3})
	require.NoError(t, err)
	for _, f := range result.Files {
		assert.Contains(t, f.Output, "<strong>")
	}
	assert.Equal(t, []string{bbcode.RuleBold}, parser.ActiveRules().Names())
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := newRunner(config.FormatHTML).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.bbcode")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(config.FormatHTML).Run(ctx, runner.Options{WorkingDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_HasErrorsNil(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasErrors())
}
