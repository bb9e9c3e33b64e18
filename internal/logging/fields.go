// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging. Using constants prevents
// typos and enables IDE autocomplete across the command package.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Run configuration fields.
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Run statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesModified   = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
