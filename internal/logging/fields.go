package logging

// Structured field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Database fields.
	FieldDatabase = "database"
	FieldRecords  = "records"
	FieldCommands = "commands"

	// Tokenizer fields.
	FieldFrontend = "frontend"
	FieldLanguage = "language"
	FieldTokens   = "tokens"
	FieldJobs     = "jobs"
	FieldFormat   = "format"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
