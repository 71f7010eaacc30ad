package msi

import "time"

// Exit codes for semantic error classification, following Unix/GNU
// conventions: 0 success, 1 general error, 2 CLI usage error, 3+
// application-specific errors.
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitCursorError     = 12 // Cursor creation failed
	ExitQueryError      = 13 // SQL execution failed
)

const (
	// MaxConnectionRetries is the connect attempt budget. The budget check
	// fires when the attempt counter reaches this value, so at most
	// MaxConnectionRetries-1 real open attempts occur.
	MaxConnectionRetries = 5

	// DefaultPort is the standard MySQL server port.
	DefaultPort = 3306

	// DefaultConnectTimeout bounds a single dial attempt.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultRetryInitialDelay is the initial delay used when a caller opts
	// into exponential backoff between connect attempts.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay caps the delay between backoff attempts.
	DefaultRetryMaxDelay = 30 * time.Second
)
