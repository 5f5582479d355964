package tracker

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy bounds retries of transient tracker failures: network
// errors, 429 and 5xx. Validation and authentication rejections are
// never retried.
type RetryPolicy struct {
	Attempts int
	Base     time.Duration
	Factor   int
}

// DefaultRetryPolicy retries twice after the first failure, waiting
// 500ms then 2s.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Base: 500 * time.Millisecond, Factor: 4}

// Do runs fn up to Attempts times, backing off exponentially between
// transient failures. The last error is returned on exhaustion.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	delay := p.Base
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !transient(err) || attempt >= p.Attempts {
			return err
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= time.Duration(p.Factor)
	}
}

// transient classifies an error for retry purposes. Structured tracker
// rejections decide for themselves; anything else (transport-level) is
// assumed transient.
func transient(err error) bool {
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
