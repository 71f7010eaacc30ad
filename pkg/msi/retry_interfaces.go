package msi

import "time"

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	// IsTransient returns true if the error is temporary and the operation
	// should be retried.
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next retry attempt and
// carries the total attempt budget.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait before the next attempt.
	// attempt is zero-indexed (0 = first retry, 1 = second retry, etc.)
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the total attempt budget. The retry loop stops
	// when the attempt counter reaches this value (so the budget is an
	// upper bound, not a count of attempts made). Values <= 0 mean
	// unlimited attempts.
	MaxAttempts() int
}
