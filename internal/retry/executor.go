package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/robDaglio/msi/pkg/msi"
)

// ExhaustedError reports that the attempt budget ran out before an operation
// succeeded. Attempts is the number of operations actually run.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	if e.LastErr == nil {
		return fmt.Sprintf("attempt budget exhausted after %d attempt(s)", e.Attempts)
	}
	return fmt.Sprintf("attempt budget exhausted after %d attempt(s): %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Executor orchestrates connection attempts with error classification and a
// delay strategy.
//
// The Executor itself is safe for concurrent use when calling Execute().
// WithOnRetry() returns a NEW instance with the callback configured, so each
// goroutine can have its own configuration without shared state.
type Executor struct {
	classifier msi.ErrorClassifier
	strategy   msi.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier msi.ErrorClassifier, strategy msi.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// WithOnRetry returns a new Executor with the specified retry callback.
// The receiver is not modified.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs the operation until it succeeds, fails with a non-transient
// error, or the attempt budget runs out.
//
// The attempt counter starts at 1 and the budget check precedes each
// attempt: when the counter equals the strategy's MaxAttempts, the loop
// stops without running the operation again, so at most MaxAttempts-1
// operations execute. A budget <= 0 means unlimited attempts.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxAttempts := e.strategy.MaxAttempts()
	var lastErr error

	for attempt := 1; ; attempt++ {
		if maxAttempts > 0 && attempt >= maxAttempts {
			return &ExhaustedError{Attempts: attempt - 1, LastErr: lastErr}
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}

		if !e.classifier.IsTransient(err) {
			return err
		}
		lastErr = err

		delay := e.strategy.NextDelay(attempt - 1)

		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}
