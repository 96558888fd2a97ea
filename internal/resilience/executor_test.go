package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"pitchapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func retryOnTemporary(err error) Classification {
	return Classification{Retryable: errors.Is(err, errTemporary), RecordFailure: true}
}

func fastPolicy(breaker bool) Policy {
	return Policy{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      breaker,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	}
}

func TestExecute_RetriesTemporaryFailure(t *testing.T) {
	exec := NewExecutor(fastPolicy(false))

	attempts := 0
	err := exec.Execute(context.Background(), "analyze", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTemporary
		}
		return nil
	}, retryOnTemporary)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecute_GivesUpAfterMaxAttempts(t *testing.T) {
	exec := NewExecutor(fastPolicy(false))

	attempts := 0
	err := exec.Execute(context.Background(), "analyze", func(context.Context) error {
		attempts++
		return errTemporary
	}, retryOnTemporary)

	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 3, attempts)
}

func TestExecute_DoesNotRetryPermanentFailure(t *testing.T) {
	exec := NewExecutor(fastPolicy(false))
	errBadRequest := errors.New("bad request")

	attempts := 0
	err := exec.Execute(context.Background(), "analyze", func(context.Context) error {
		attempts++
		return errBadRequest
	}, nil)

	assert.ErrorIs(t, err, errBadRequest)
	assert.Equal(t, 1, attempts)
}

func TestExecute_StopsOnCancelledContext(t *testing.T) {
	exec := NewExecutor(fastPolicy(false))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := exec.Execute(ctx, "analyze", func(context.Context) error {
		called = true
		return nil
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestExecute_OpensCircuitAfterFailures(t *testing.T) {
	p := fastPolicy(true)
	p.RetryMaxAttempts = 1
	exec := NewExecutor(p)
	errDown := errors.New("upstream down")

	fail := func(context.Context) error { return errDown }
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, exec.Execute(context.Background(), "analyze", fail, nil), errDown)
	}
	assert.Equal(t, "open", exec.State("analyze"))

	called := false
	err := exec.Execute(context.Background(), "analyze", func(context.Context) error {
		called = true
		return nil
	}, nil)

	assert.True(t, IsCircuitOpen(err))
	assert.False(t, called)
	assert.Equal(t, "closed", exec.State("other"))
}

func TestExecute_UnrecordedFailuresKeepCircuitClosed(t *testing.T) {
	p := fastPolicy(true)
	p.RetryMaxAttempts = 1
	exec := NewExecutor(p)

	ignore := func(error) Classification { return Classification{} }
	for i := 0; i < 5; i++ {
		_ = exec.Execute(context.Background(), "analyze", func(context.Context) error {
			return errors.New("caller mistake")
		}, ignore)
	}

	assert.Equal(t, "closed", exec.State("analyze"))
}

func TestExecute_NilCallback(t *testing.T) {
	err := NewExecutor(DefaultPolicy()).Execute(context.Background(), "x", nil, nil)
	assert.ErrorContains(t, err, "callback is nil")
}

func TestPolicyFromConfig(t *testing.T) {
	p := PolicyFromConfig(config.ResilienceConfig{
		RetryMaxAttempts:    5,
		RetryInitialBackoff: 2 * time.Second,
		RetryMaxBackoff:     time.Second,
		BreakerEnabled:      true,
		BreakerMinRequests:  8,
		BreakerFailureRatio: 1.5,
	})

	assert.Equal(t, 5, p.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, p.RetryMaxBackoff, "max backoff is raised to the initial backoff")
	assert.Equal(t, uint32(8), p.BreakerMinRequests)
	assert.Equal(t, 0.5, p.BreakerFailureRatio, "out of range ratio falls back to the default")
	assert.Equal(t, 2.0, p.RetryMultiplier)
	assert.Equal(t, 30*time.Second, p.BreakerOpenTimeout)
}
