package appgen

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := compiler.Compile(doc, opts)
//	if errors.Is(err, appgen.ErrCompilationFailed) {
//	    // Report diagnostics and exit
//	}
var (
	// ErrInvalidSpec indicates the specification document could not be parsed.
	ErrInvalidSpec = errors.New("invalid specification")

	// ErrCompilationFailed indicates the compiler collected error diagnostics.
	ErrCompilationFailed = errors.New("compilation failed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates the command line was incomplete or malformed.
	ErrUsage = errors.New("usage error")

	// ErrExecutionFailed indicates SQL execution failed.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrOutputFailed indicates generated artifacts could not be written.
	ErrOutputFailed = errors.New("output failed")

	// ErrApprovalDenied indicates the user declined to apply the schema.
	ErrApprovalDenied = errors.New("approval denied")
)

// usageErrorPatterns are message prefixes cobra produces for command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidSpec):
		return ExitInvalidSpec
	case errors.Is(err, ErrCompilationFailed):
		return ExitCompilationFailed
	case errors.Is(err, ErrOutputFailed):
		return ExitOutputFailed
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.HasPrefix(errStr, pattern) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
