// Package retry drives bounded connection attempts with pluggable error
// classification and delay strategies.
//
// # Example Usage
//
//	classifier := retry.NewMySQLErrorClassifier()
//	strategy := retry.NewImmediate(msi.MaxConnectionRetries)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return openConnection(ctx)
//	})
//
// # Attempt Budget
//
// The strategy's MaxAttempts value is an upper bound checked before each
// attempt: when the attempt counter reaches it the loop stops, so at most
// MaxAttempts-1 operations run. Exhaustion is reported as *ExhaustedError
// wrapping the last transient failure.
//
// # Error Classification
//
// The ErrorClassifier interface separates transient (retryable) from fatal
// errors. MySQLErrorClassifier recognizes transient MySQL server errors,
// invalid-connection driver errors, and network-level failures.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to
// create independent configurations per goroutine.
package retry
