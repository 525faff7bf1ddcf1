// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package retry_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	jujuerrors "github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juju/pacing-testkit/internal/retry"
	"github.com/juju/pacing-testkit/internal/wait"
)

func testPolicy(timeout time.Duration) *retry.Policy {
	testClock := testclock.NewClock(time.Now())
	return &retry.Policy{
		Timeout:      timeout,
		PollInterval: time.Second,
		Clock: &testclock.AutoAdvancingClock{
			Clock:   testClock,
			Advance: testClock.Advance,
		},
	}
}

func TestRetryOnKinds(t *testing.T) {
	counter := atomic.Int32{}
	result, err := retry.RetryOnKinds(retry.RetryOnKindsCfg[string]{
		Context: t.Context(),
		Do: func(context.Context) (string, error) {
			if counter.Add(1) < 5 {
				return "", jujuerrors.NotFoundf("course %q", "algebra")
			}
			return "algebra", nil
		},
		RetriableKinds: []wait.ErrorKind{wait.KindNotFound},
		Policy:         testPolicy(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "algebra", result)
	assert.Equal(t, int32(5), counter.Load())
}

func TestRetryOnKindsFailsOnOtherKinds(t *testing.T) {
	counter := atomic.Int32{}
	boom := errors.New("boom")
	_, err := retry.RetryOnKinds(retry.RetryOnKindsCfg[string]{
		Context: t.Context(),
		Do: func(context.Context) (string, error) {
			counter.Add(1)
			return "", boom
		},
		RetriableKinds: []wait.ErrorKind{wait.KindNotFound},
		Policy:         testPolicy(time.Minute),
	})
	require.ErrorIs(t, err, wait.ErrAborted)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), counter.Load())
}

func TestRetryOnKindsAssertions(t *testing.T) {
	counter := atomic.Int32{}
	result, err := retry.RetryOnKinds(retry.RetryOnKindsCfg[int32]{
		Context: t.Context(),
		Do: func(context.Context) (int32, error) {
			return counter.Add(1), nil
		},
		DataAssertions: []retry.Assert[int32]{
			func(n int32) error {
				if n < 3 {
					return errors.New("too early")
				}
				return nil
			},
		},
		RetriableKinds: []wait.ErrorKind{wait.KindAssertion},
		Policy:         testPolicy(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), result)
}

func TestRetryOnKindsTimeout(t *testing.T) {
	policy := testPolicy(3 * time.Second)
	_, err := retry.RetryOnKinds(retry.RetryOnKindsCfg[string]{
		Context: t.Context(),
		Do: func(context.Context) (string, error) {
			return "", jujuerrors.NotFoundf("course")
		},
		RetriableKinds: []wait.ErrorKind{wait.KindNotFound},
		Policy:         policy,
	})
	require.ErrorIs(t, err, wait.ErrTimeout)
	assert.True(t, jujuerrors.Is(err, jujuerrors.NotFound))
	assert.Empty(t, policy.Retryable)
}
