package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/runner"
)

// FormatOutcome formats one converted file as a single line.
// Paths are shown relative to workDir when possible.
//
//	post.bbcode -> out/post.html
//	post.bbcode (unchanged)
//	broken.bbcode: error: file too large
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, workDir string) string {
	src := s.FilePath.Render(displayPath(outcome.Path, workDir))

	switch {
	case outcome.Error != nil:
		return fmt.Sprintf("%s: %s\n", src, s.Error.Render(fmt.Sprintf("error: %v", outcome.Error)))
	case outcome.Unchanged:
		return src + s.Dim.Render(" (unchanged)") + "\n"
	case outcome.OutputPath != "":
		return fmt.Sprintf("%s %s %s\n", src, s.Arrow.Render("->"), displayPath(outcome.OutputPath, workDir))
	default:
		return src + s.Dim.Render(fmt.Sprintf(" (%d bytes)", outcome.BytesOut)) + "\n"
	}
}

// FormatFileHeader formats the header printed above a file's converted
// output when several files go to one stream.
func (s *Styles) FormatFileHeader(path, workDir string) string {
	return s.Dim.Render("==> ") + s.FilePath.Render(displayPath(path, workDir)) + s.Dim.Render(" <==")
}

func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
