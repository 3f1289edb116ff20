// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldURL    = "url"
	FieldPath   = "path"
	FieldOutput = "output"

	// Pipeline fields.
	FieldFormat = "format"
	FieldJobs   = "jobs"
	FieldPages  = "pages"
	FieldStatus = "status"
	FieldBytes  = "bytes"
	FieldChunks = "chunks"
	FieldModel  = "model"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
