package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/adrg/xdg"
)

const appName = "gobbcode"

// ConfigPaths holds the config files found for one invocation. An empty
// field means no file at that layer.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string // from --config
}

// Project files, most preferred first. JSON is read by the YAML decoder.
//
//nolint:gochecknoglobals // lookup table
var projectConfigFiles = []string{
	".gobbcode.yml",
	".gobbcode.yaml",
	".gobbcode.json",
	"gobbcode.yml",
	"gobbcode.yaml",
}

//nolint:gochecknoglobals // lookup table
var layerConfigFiles = []string{"config.yaml", "config.yml"}

// A directory holding any of these ends the upward project search. Git
// worktrees and submodules use a .git file, so the marker may be either.
//
//nolint:gochecknoglobals // lookup table
var vcsRootMarkers = []string{".git", ".hg", ".svn", ".jj"}

// DiscoverPaths locates the system, user and project config files for
// workDir. Missing layers are left empty.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigFiles),
		User:    firstFile(UserConfigDir(), layerConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appName)
}

// UserConfigDir is $XDG_CONFIG_HOME/gobbcode. xdg reads the environment
// once at init; call xdg.Reload after changing it.
func UserConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// FindProjectConfig walks from startDir toward the filesystem root and
// returns the first project config file it meets. The walk gives up at a
// VCS root or the home directory, returning "" with no error.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := resolveStartDir(startDir)
	if err != nil {
		return "", err
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}
		if isBoundary(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func resolveStartDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

func isBoundary(dir string) bool {
	if xdg.Home != "" && dir == xdg.Home {
		return true
	}
	return slices.ContainsFunc(vcsRootMarkers, func(marker string) bool {
		_, err := os.Stat(filepath.Join(dir, marker))
		return err == nil
	})
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
