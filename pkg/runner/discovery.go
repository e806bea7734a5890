package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds BBCode sources under opts.Paths.
// It returns a sorted, de-duplicated list of absolute file paths.
// Paths named explicitly as files are accepted regardless of extension,
// but exclude globs still apply to them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	f := &finder{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !f.excluded(abs) {
				f.add(abs)
			}
			continue
		}

		if err := f.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(f.files)
	return f.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

type finder struct {
	ctx        context.Context
	workDir    string
	extensions []string
	excludes   []string
	follow     bool

	files   []string
	seen    map[string]struct{}
	visited map[string]struct{}
}

func (f *finder) add(file string) {
	if _, ok := f.seen[file]; ok {
		return
	}
	f.seen[file] = struct{}{}
	f.files = append(f.files, file)
}

// walk collects sources under root. Hidden entries below root are skipped.
// Directory symlinks are followed only when enabled, and each real
// directory is entered at most once so symlink cycles terminate.
func (f *finder) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := f.visited[real]; ok {
			return nil
		}
		f.visited[real] = struct{}{}

		if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			root = real
		}
	}

	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		if err := f.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if current == root {
			return nil
		}

		hidden := strings.HasPrefix(entry.Name(), ".")

		switch {
		case entry.IsDir():
			if hidden || f.excluded(current) {
				return filepath.SkipDir
			}
			return nil

		case entry.Type()&fs.ModeSymlink != 0:
			if hidden {
				return nil
			}
			return f.symlink(current)

		case !entry.Type().IsRegular() || hidden:
			return nil
		}

		if f.matches(current) {
			f.add(current)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (f *finder) symlink(link string) error {
	info, err := os.Stat(link)
	if err != nil {
		// Dangling links are ignored.
		return nil //nolint:nilerr // skip broken symlinks
	}

	if !info.IsDir() {
		if f.matches(link) {
			f.add(link)
		}
		return nil
	}

	if !f.follow || f.excluded(link) {
		return nil
	}

	real, err := filepath.EvalSymlinks(link)
	if err != nil {
		return nil //nolint:nilerr // skip unresolvable symlinks
	}
	return f.walk(real)
}

func (f *finder) matches(file string) bool {
	return hasExtension(file, f.extensions) && !f.excluded(file)
}

func (f *finder) excluded(abs string) bool {
	rel, err := filepath.Rel(f.workDir, abs)
	if err != nil {
		rel = abs
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range f.excludes {
		if matchGlob(rel, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

func hasExtension(file string, extensions []string) bool {
	ext := filepath.Ext(file)
	for _, candidate := range extensions {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against pattern.
// A pattern without a slash is also tried against the base name, so
// "*.bak" excludes backups at any depth. "**" matches zero or more
// whole path segments, and "dir/**" matches dir itself.
func matchGlob(rel, pattern string) bool {
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") && pattern != "**" {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(rel, "/"), strings.Split(pattern, "/"))
}

func matchSegments(parts, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(parts[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], parts[0]); err != nil || !ok {
			return false
		}
		parts = parts[1:]
		pattern = pattern[1:]
	}

	return len(parts) == 0
}
