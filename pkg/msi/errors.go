package msi

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios. These enable callers to
// distinguish error types using errors.Is().
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the connect retry budget was exhausted
	// or the manager's connection state is latched as failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrCursorFailed indicates cursor creation failed. Not recoverable.
	ErrCursorFailed = errors.New("cursor creation failed")

	// ErrQueryFailed indicates SQL execution or result fetching failed.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method
	// is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the appropriate process exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrCursorFailed):
		return ExitCursorError
	case errors.Is(err, ErrQueryFailed):
		return ExitQueryError
	}

	errStr := err.Error()

	// Cobra flag/argument parsing errors surface as plain strings.
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") ||
		(strings.Contains(errStr, "accepts") && strings.Contains(errStr, "arg(s)")) {
		return ExitUsageError
	}

	// Fall back to common connection error patterns.
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
