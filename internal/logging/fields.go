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
	FieldJobs       = "jobs"

	// Detection fields.
	FieldLanguage = "language"
	FieldStrategy = "strategy"
	FieldSamples  = "samples"
	FieldModel    = "model"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesCounted    = "files_counted"
	FieldFilesSkipped    = "files_skipped"
	FieldLanguages       = "languages"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
