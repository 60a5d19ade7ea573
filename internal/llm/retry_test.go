package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr struct {
	code int
}

func (e *statusErr) Error() string       { return fmt.Sprintf("http %d", e.code) }
func (e *statusErr) HTTPStatusCode() int { return e.code }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil", err: nil, want: ErrorTypeNonRetryable},
		{name: "canceled", err: context.Canceled, want: ErrorTypeNonRetryable},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: ErrorTypeRetryable},
		{name: "rate limited", err: &statusErr{code: 429}, want: ErrorTypeRetryable},
		{name: "server error", err: &statusErr{code: 503}, want: ErrorTypeRetryable},
		{name: "unauthorized", err: &statusErr{code: 401}, want: ErrorTypeNonRetryable},
		{name: "bad request", err: &statusErr{code: 400}, want: ErrorTypeNonRetryable},
		{name: "context length", err: errors.New("maximum context length exceeded"), want: ErrorTypeNonRetryable},
		{name: "timeout message", err: errors.New("request timeout"), want: ErrorTypeRetryable},
		{name: "unknown", err: errors.New("something odd"), want: ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, 1*time.Second, CalculateBackoff(1, 1.0, 8.0))
	assert.Equal(t, 2*time.Second, CalculateBackoff(2, 1.0, 8.0))
	assert.Equal(t, 4*time.Second, CalculateBackoff(3, 1.0, 8.0))
	assert.Equal(t, 8*time.Second, CalculateBackoff(4, 1.0, 8.0))
	// Capped at max
	assert.Equal(t, 8*time.Second, CalculateBackoff(10, 1.0, 8.0))
	// Attempt below 1 treated as 1
	assert.Equal(t, 1*time.Second, CalculateBackoff(0, 1.0, 8.0))
}

func TestWithRetryResult_SucceedsFirstTry(t *testing.T) {
	calls := 0
	result, err := WithRetryResult(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestWithRetryResult_RetriesRetryableErrors(t *testing.T) {
	cfg := RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 0.001, BackoffMax: 0.001}
	calls := 0
	result, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls < 3 {
			return "", &statusErr{code: 503}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestWithRetryResult_DoesNotRetryNonRetryable(t *testing.T) {
	cfg := RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 0.001, BackoffMax: 0.001}
	calls := 0
	_, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		return "", &statusErr{code: 401}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryResult_Disabled(t *testing.T) {
	cfg := RetryConfig{Enabled: false}
	calls := 0
	_, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		return "", &statusErr{code: 503}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryResult_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 0.001, BackoffMax: 0.001}
	_, err := WithRetryResult(ctx, cfg, func() (string, error) {
		return "", &statusErr{code: 503}
	})
	assert.ErrorIs(t, err, context.Canceled)
}
