package appgen

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Generation completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing flags, invalid args)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or policy values
	ExitConnectionError   = 11 // Failed to connect to database
	ExitApprovalDenied    = 12 // User declined to apply
	ExitExecutionFailed   = 13 // SQL execution failed
	ExitInvalidSpec       = 20 // Specification could not be parsed
	ExitCompilationFailed = 21 // Compiler reported error diagnostics
	ExitOutputFailed      = 22 // Artifacts could not be written
)

const (
	// DefaultSchemaFile is the file name of the emitted DDL inside the output directory.
	DefaultSchemaFile = "schema.sql"

	// ManifestFile is the file name of the generation manifest.
	ManifestFile = "appgen.manifest.yaml"

	// ConfigFileName is the optional project configuration read next to the spec.
	ConfigFileName = "appgen.yaml"

	// DefaultBoundedContext is used when the spec has no /x-ddd/boundedContext.
	DefaultBoundedContext = "App"

	// DefaultApplyTimeout bounds a whole apply run.
	DefaultApplyTimeout = 1 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
