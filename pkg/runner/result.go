package runner

import "time"

// FileOutcome records the conversion of one source file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Output is the converted document when the run does not write files.
	Output string

	// OutputPath is where the conversion was written, if it was.
	OutputPath string

	// Written is true when OutputPath was created or changed.
	Written bool

	// Unchanged is true when OutputPath already held this exact output.
	Unchanged bool

	// BytesIn and BytesOut are the source and output sizes.
	BytesIn  int
	BytesOut int

	// Duration is the time spent converting and writing.
	Duration time.Duration

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesConverted  int `json:"files_converted"`
	FilesWritten    int `json:"files_written"`
	FilesUnchanged  int `json:"files_unchanged"`
	FilesErrored    int `json:"files_errored"`
	BytesIn         int `json:"bytes_in"`
	BytesOut        int `json:"bytes_out"`
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.BytesIn += outcome.BytesIn
	r.Stats.BytesOut += outcome.BytesOut

	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Unchanged {
		r.Stats.FilesUnchanged++
	}
}
