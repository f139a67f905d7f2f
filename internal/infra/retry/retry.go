package retry

// Retry with exponential backoff and full jitter.
// Callers decide which errors are retryable through Options.Classify,
// which may also return a server-requested delay (e.g. Telegram retry_after).

import (
	"context"
	"math/rand"
	"time"
)

// Classifier reports whether err is worth retrying and an optional minimum delay
type Classifier func(err error) (retryable bool, after time.Duration)

type Options struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Classify   Classifier
}

// Never is the default classifier
func Never(error) (bool, time.Duration) { return false, 0 }

// Always retries every error without a requested delay
func Always(error) (bool, time.Duration) { return true, 0 }

func clamp(d, max time.Duration) time.Duration {
	if max > 0 && d > max {
		return max
	}
	return d
}

// FullJitterSleep returns a random delay in [0, min(maxDelay, baseDelay*2^attempt)]
func FullJitterSleep(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if baseDelay <= 0 {
		return 0
	}
	maxForAttempt := clamp(baseDelay<<attempt, maxDelay)
	if maxForAttempt <= 0 {
		// shift overflow
		maxForAttempt = maxDelay
	}
	if maxForAttempt <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(maxForAttempt) + 1))
}

// Do runs fn until it succeeds, returns a non-retryable error, runs out of attempts
// or ctx is done.
func Do(ctx context.Context, opts Options, fn func() error) error {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 300 * time.Millisecond
	}
	if opts.Classify == nil {
		opts.Classify = Never
	}

	totalAttempts := 1 + opts.MaxRetries
	var lastErr error

	for attempt := 0; attempt < totalAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		retryable, after := opts.Classify(err)
		if !retryable || attempt == totalAttempts-1 {
			return lastErr
		}

		sleep := FullJitterSleep(attempt, opts.BaseDelay, opts.MaxDelay)
		if after > 0 {
			sleep = clamp(after, opts.MaxDelay)
		}

		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return lastErr
}
