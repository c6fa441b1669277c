package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/vvka-141/appgen/pkg/appgen"
)

var _ appgen.BackoffStrategy = (*ExponentialBackoff)(nil)

// ExponentialBackoff grows the delay by Multiplier per attempt, capped at
// MaxDelay, with +/- Jitter proportional randomness.
type ExponentialBackoff struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Attempts is the number of retries after the first try; -1 means unlimited.
	Attempts int
	// Jitter is a fraction in [0, 1]; 0.1 means +/- 10%.
	Jitter float64
	// Rand returns values in [0, 1). Defaults to math/rand.
	Rand func() float64
}

// DefaultBackoff returns the backoff used for connection checks.
func DefaultBackoff() *ExponentialBackoff {
	return NewExponentialBackoff(appgen.DefaultRetryMaxAttempts, appgen.DefaultRetryInitialDelay, appgen.DefaultRetryMaxDelay)
}

// NewExponentialBackoff creates a doubling backoff with 10% jitter.
func NewExponentialBackoff(attempts int, initial, maxDelay time.Duration) *ExponentialBackoff {
	return &ExponentialBackoff{
		InitialDelay: initial,
		MaxDelay:     maxDelay,
		Multiplier:   2.0,
		Attempts:     attempts,
		Jitter:       0.1,
	}
}

// NextDelay returns the wait before retry number attempt (zero-based).
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(b.InitialDelay) * math.Pow(b.Multiplier, float64(attempt))
	if b.MaxDelay > 0 && delay > float64(b.MaxDelay) {
		delay = float64(b.MaxDelay)
	}

	if b.Jitter > 0 {
		random := b.Rand
		if random == nil {
			random = rand.Float64
		}
		delay *= 1.0 + b.Jitter*(random()-0.5)*2.0
	}

	if delay < 0 {
		return 0
	}
	return time.Duration(delay)
}

// MaxAttempts returns the number of retries.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.Attempts
}
