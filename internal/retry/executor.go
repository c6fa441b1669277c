package retry

import (
	"context"
	"time"

	"github.com/vvka-141/appgen/pkg/appgen"
)

// Executor runs an operation until it succeeds, fails permanently, or the
// backoff runs out of attempts. Safe for concurrent use.
type Executor struct {
	classifier appgen.ErrorClassifier
	strategy   appgen.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier appgen.ErrorClassifier, strategy appgen.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that calls callback before each retry.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithLogger returns a copy of e that reports retries through logger.
func (e *Executor) WithLogger(logger appgen.Logger) *Executor {
	return e.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Warn("attempt %d failed: %v (retrying in %s)", attempt+1, err, delay.Round(time.Millisecond))
	})
}

// Execute runs operation and returns nil on success, or the last error.
// Context cancellation during a wait returns ctx.Err().
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
	}
	return err
}
