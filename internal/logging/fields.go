package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldRule            = "rule"
	FieldRules           = "rules"
	FieldFormat          = "format"
	FieldCaseInsensitive = "case_insensitive"
	FieldJobs            = "jobs"
	FieldWrite           = "write"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"
	FieldBytesIn         = "bytes_in"
	FieldBytesOut        = "bytes_out"

	// Server fields.
	FieldAddr      = "addr"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldDuration  = "duration"
	FieldRequestID = "request_id"
	FieldRemote    = "remote"
	FieldCached    = "cached"

	// Version fields.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"

	// Rule listing fields.
	FieldName    = "name"
	FieldPattern = "pattern"
	FieldReplace = "replace"
)
