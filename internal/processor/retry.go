package processor

import (
	"context"
	"errors"
	"math"
	"net"
	"strings"
	"time"
)

// retryConfig controls per-chunk retry behavior. State is local to one
// retryDo call and discarded when the chunk resolves.
type retryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// retryDo runs fn up to MaxAttempts times with exponential backoff,
// retrying only while retryable reports the error as transient. It
// returns the number of attempts made alongside the result.
func retryDo[T any](ctx context.Context, rc retryConfig, retryable func(error) bool, fn func() (T, error)) (T, int, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= rc.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return zero, attempt - 1, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, attempt, nil
		}
		lastErr = err

		if !retryable(err) {
			return zero, attempt, err
		}

		if attempt < rc.MaxAttempts {
			wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt-1)))
			if wait > rc.MaxWait {
				wait = rc.MaxWait
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return zero, attempt, ctx.Err()
			}
		}
	}

	return zero, rc.MaxAttempts, lastErr
}

// isTransient reports whether an error is worth retrying: unparseable
// model output, rate-limit signals, timeouts, and network failures.
func isTransient(err error) bool {
	if errors.Is(err, ErrMalformedResponse) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	msg := err.Error()
	for _, marker := range []string{"429", "quota", "RESOURCE_EXHAUSTED", "UNAVAILABLE", "rate limit"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
