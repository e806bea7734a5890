// Package fsutil provides file system helpers for batch conversion:
// bounded source reads, output path mapping, and atomic writes.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the read limit.
	ErrTooLarge = errors.New("file too large")
)

// ReadSource reads the file at path. When maxBytes is positive, files
// larger than maxBytes are rejected with ErrTooLarge.
func ReadSource(ctx context.Context, path string, maxBytes int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if maxBytes > 0 && stat.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), maxBytes)
	}

	var reader io.Reader = file
	if maxBytes > 0 {
		// The file may grow between Stat and Read.
		reader = io.LimitReader(file, maxBytes+1)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, classify(path, err)
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return nil, fmt.Errorf("%w: %s (limit %d)", ErrTooLarge, path, maxBytes)
	}

	return content, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// OutputPath maps a source file to the file its conversion is written to.
// The source extension is replaced by ext. With an empty outDir the output
// sits next to the source; otherwise the source's position relative to
// root is mirrored under outDir.
func OutputPath(source, root, outDir, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ext

	if outDir == "" {
		return filepath.Join(filepath.Dir(source), name)
	}

	relDir := "."
	if root != "" {
		if rel, err := filepath.Rel(root, filepath.Dir(source)); err == nil && !strings.HasPrefix(rel, "..") {
			relDir = rel
		}
	}

	return filepath.Join(outDir, relDir, name)
}
