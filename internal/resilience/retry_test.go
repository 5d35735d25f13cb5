package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(context.Context) error {
		calls++
		if calls < 3 {
			return NewTransientError(errors.New("remote hiccup"), 503)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := NewTransientError(errors.New("still down"), 502)
	err := Do(context.Background(), fastConfig(), func(context.Context) error {
		calls++
		return wantErr
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_DoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(context.Context) error {
		calls++
		return errors.New("record rejected")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, fastConfig(), func(context.Context) error {
		calls++
		cancel()
		return NewTransientError(errors.New("boom"), 500)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_OnRetryCallback(t *testing.T) {
	cfg := fastConfig()
	var attempts []int
	cfg.OnRetry = func(attempt int, err error) {
		attempts = append(attempts, attempt)
	}

	_ = Do(context.Background(), cfg, func(context.Context) error {
		return NewTransientError(errors.New("boom"), 500)
	})
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDo_CustomShouldRetry(t *testing.T) {
	cfg := fastConfig()
	cfg.ShouldRetry = func(error) bool { return true }

	calls := 0
	_ = Do(context.Background(), cfg, func(context.Context) error {
		calls++
		return errors.New("anything retries now")
	})
	assert.Equal(t, 3, calls)
}

func TestComputeBackoff_GrowsAndCaps(t *testing.T) {
	cfg := applyDefaults(RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		Multiplier:     2.0,
		JitterFraction: 0,
	})

	assert.Equal(t, 100*time.Millisecond, computeBackoff(0, cfg))
	assert.Equal(t, 200*time.Millisecond, computeBackoff(1, cfg))
	assert.Equal(t, 400*time.Millisecond, computeBackoff(2, cfg))
	// Capped at MaxBackoff
	assert.Equal(t, time.Second, computeBackoff(10, cfg))
}

func TestApplyDefaults(t *testing.T) {
	cfg := applyDefaults(RetryConfig{})
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialBackoff)
	assert.Equal(t, 10*time.Second, cfg.MaxBackoff)
	assert.InDelta(t, 2.0, cfg.Multiplier, 0.001)
}
