// Package runner converts many BBCode files concurrently.
package runner

// Options controls a batch conversion run.
type Options struct {
	Paths      []string // files or directories; "." when empty
	WorkingDir string   // resolves relative Paths and roots OutDir mirroring; cwd when empty

	// Extensions select source files by suffix, dot included.
	Extensions []string

	// ExcludeGlobs skip matching files and directories relative to
	// WorkingDir. A pattern without a slash matches a base name at any depth.
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs caps the worker count; <= 0 uses one worker per CPU.
	Jobs int

	Write     bool
	OutDir    string // empty writes beside each source
	OutputExt string

	// MaxBytes rejects larger sources. Zero disables the check.
	MaxBytes int64
}

// DefaultExtensions are the source suffixes used when Options.Extensions
// is empty.
func DefaultExtensions() []string {
	return []string{".bbcode", ".bb"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
