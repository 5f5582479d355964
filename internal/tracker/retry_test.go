package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryPolicy{Attempts: 3, Base: time.Millisecond, Factor: 2}

func TestRetryPolicy_TransientRetried(t *testing.T) {
	calls := 0
	err := fastRetry.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &SubmitError{Status: 503, Message: "maintenance"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_TerminalNotRetried(t *testing.T) {
	calls := 0
	err := fastRetry.Do(context.Background(), func() error {
		calls++
		return &SubmitError{Status: 409, Message: "duplicate"}
	})

	var se *SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 409, se.Status)
	assert.Equal(t, 1, calls, "validation failures are terminal")
}

func TestRetryPolicy_RateLimitRetried(t *testing.T) {
	calls := 0
	err := fastRetry.Do(context.Background(), func() error {
		calls++
		return &SubmitError{Status: 429, Message: "slow down"}
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls, "retries exhaust at the attempt bound")
}

func TestRetryPolicy_NetworkErrorRetried(t *testing.T) {
	calls := 0
	err := fastRetry.Do(context.Background(), func() error {
		calls++
		return errors.New("connection reset")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryPolicy{Attempts: 5, Base: time.Hour, Factor: 2}.Do(ctx, func() error {
		calls++
		cancel()
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
