// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package wait

import (
	"fmt"
	"time"

	"github.com/juju/errors"
)

const (
	// ErrTimeout is matched by every error returned when a wait runs out of time.
	ErrTimeout = errors.ConstError("wait timed out")
	// ErrAborted is matched by every error returned when a predicate failed
	// with a non-retryable error kind.
	ErrAborted = errors.ConstError("wait aborted")
	// ErrNestedWait is returned when a wait is started while another wait
	// is active in the same context.
	ErrNestedWait = errors.ConstError("nested wait rejected")
)

// TimeoutError is returned when the condition was not satisfied before the
// policy's timeout elapsed. Cause holds the last error the predicate returned,
// or nil if the predicate only ever returned falsy values.
type TimeoutError struct {
	Timeout  time.Duration
	Attempts int
	Cause    error
}

func (e *TimeoutError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("condition not met within %v after %d attempt(s)", e.Timeout, e.Attempts)
	}
	return fmt.Sprintf("condition not met within %v after %d attempt(s): %v", e.Timeout, e.Attempts, e.Cause)
}

// Is reports whether target is ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// AbortedError is returned when the predicate failed with an error whose kind
// must not be retried.
type AbortedError struct {
	Kind ErrorKind
	Err  error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("wait aborted (%s): %v", e.Kind, e.Err)
}

// Is reports whether target is ErrAborted.
func (e *AbortedError) Is(target error) bool {
	return target == ErrAborted
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}
