// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package wait

import (
	"context"
	"reflect"

	"github.com/juju/errors"
	"github.com/juju/retry"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/juju/pacing-testkit/internal/wait"

// errNotSatisfied is returned internally for attempts where the predicate
// returned a falsy value without an error. It is retried but never recorded
// as a cause.
const errNotSatisfied = errors.ConstError("condition not satisfied")

// Predicate is polled by WaitFor. The context it receives is marked as
// belonging to the running wait and must be passed on to anything the
// predicate calls.
type Predicate[T any] func(ctx context.Context) (T, error)

// Assert is a function type that takes data and returns an error if the assertion fails.
type Assert[T any] func(T) error

// WaitForCfg is a configuration structure for the WaitFor function.
type WaitForCfg[T any] struct {
	Context context.Context

	// Predicate is called until it returns a truthy value.
	Predicate Predicate[T]
	// Assertions are checked against every truthy value. A failed
	// assertion is retried like any other assertion error.
	Assertions []Assert[T]

	// Policy configures timing and which error kinds abort the wait.
	// If not provided, the process defaults are used.
	Policy *Policy
}

// WaitForErrorCfg is a configuration structure for the WaitForError function.
type WaitForErrorCfg[T any] struct {
	Context context.Context

	// Predicate is called until it fails with an error of Kind.
	Predicate Predicate[T]
	// Kind is the error kind to wait for.
	Kind ErrorKind

	// Policy configures timing and which other error kinds abort the wait.
	// If not provided, the process defaults are used.
	Policy *Policy
}

// WaitFor calls the predicate until it returns a truthy value that passes
// every assertion, and returns that value.
//
// Errors classified as one of the policy's non-retryable kinds end the wait
// with an *AbortedError. Any other error is remembered and retried. When the
// timeout elapses a *TimeoutError is returned wrapping the last remembered
// error, if there was one.
func WaitFor[T any](cfg WaitForCfg[T]) (T, error) {
	var result T
	if cfg.Predicate == nil {
		return result, errors.NotValidf("nil predicate")
	}
	err := run(cfg.Context, "wait.WaitFor", resolve(cfg.Policy), func(ctx context.Context, p resolvedPolicy) error {
		value, err := cfg.Predicate(ctx)
		if err != nil {
			return err
		}
		if !Truthy(value) {
			return errNotSatisfied
		}
		for _, assert := range cfg.Assertions {
			if err := assert(value); err != nil {
				if p.classify(err) == KindGeneric {
					err = WithKind(err, KindAssertion)
				}
				return err
			}
		}
		result = value
		return nil
	})
	return result, err
}

// Eventually is WaitFor for call sites that branch on the outcome. It
// returns false without an error when the wait times out. Aborted and
// nested waits are still reported as errors.
func Eventually(ctx context.Context, condition Predicate[bool], policy *Policy) (bool, error) {
	_, err := WaitFor(WaitForCfg[bool]{
		Context:   ctx,
		Predicate: condition,
		Policy:    policy,
	})
	if errors.Is(err, ErrTimeout) {
		return false, nil
	}
	return err == nil, err
}

// WaitForError calls the predicate until it fails with an error of the
// configured kind. A predicate returning no error keeps the wait going.
func WaitForError[T any](cfg WaitForErrorCfg[T]) error {
	if cfg.Predicate == nil {
		return errors.NotValidf("nil predicate")
	}
	return run(cfg.Context, "wait.WaitForError", resolve(cfg.Policy), func(ctx context.Context, p resolvedPolicy) error {
		_, err := cfg.Predicate(ctx)
		if err == nil {
			return errNotSatisfied
		}
		if p.classify(err) == cfg.Kind {
			return nil
		}
		return err
	})
}

// run polls attempt until it returns nil, the policy's timeout elapses, the
// context is done, or attempt fails with an error the policy treats as fatal.
func run(ctx context.Context, name string, p resolvedPolicy, attempt func(context.Context, resolvedPolicy) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	waitCtx, leave, err := enter(ctx)
	if err != nil {
		log.Ctx(ctx).Debug().Str("wait", name).Msg("rejecting nested wait")
		return err
	}
	ctx = waitCtx
	defer leave()

	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(
		attribute.String("wait.timeout", p.timeout.String()),
	))
	defer span.End()
	logger := log.Ctx(ctx).With().Str("wait", name).Logger()

	var (
		attempts  int
		lastCause error
		abort     error
		stopped   bool
	)
	poll := func() error {
		attempts++
		err := attempt(ctx, p)
		if err == nil || errors.Is(err, errNotSatisfied) {
			return err
		}
		if kind := p.classify(err); p.fatal(kind) {
			if kind == KindNestedWait {
				abort = err
			} else {
				abort = &AbortedError{Kind: kind, Err: err}
			}
			return abort
		}
		lastCause = err
		return err
	}
	start := p.clock.Now()
	callErr := retry.Call(retry.CallArgs{
		Func: poll,
		IsFatalError: func(error) bool {
			return abort != nil
		},
		NotifyFunc: func(err error, attempt int) {
			logger.Debug().Err(err).Int("attempt", attempt).Msg("condition not met yet")
		},
		BackoffFunc: p.backoff,
		MaxDuration: p.timeout,
		Delay:       p.delay,
		MaxDelay:    p.maxDelay,
		Clock:       p.clock,
		Stop:        ctx.Done(),
	})
	// retry.Call gives up as soon as the next delay would overrun the
	// timeout, so the condition gets one last poll at the deadline.
	if retry.IsDurationExceeded(callErr) {
		if remaining := p.timeout - p.clock.Now().Sub(start); remaining > 0 {
			select {
			case <-p.clock.After(remaining):
				if poll() == nil {
					callErr = nil
				}
			case <-ctx.Done():
				stopped = true
			}
		}
	}

	var outcome string
	switch {
	case callErr == nil:
		outcome = "success"
	case abort != nil:
		outcome = "aborted"
		err = abort
	case stopped || retry.IsRetryStopped(callErr):
		outcome = "stopped"
		err = errors.Annotatef(ctx.Err(), "wait stopped after %d attempt(s)", attempts)
	case retry.IsDurationExceeded(callErr):
		outcome = "timeout"
		err = &TimeoutError{Timeout: p.timeout, Attempts: attempts, Cause: lastCause}
		logger.Warn().Err(lastCause).Int("attempts", attempts).Msg("condition not met before timeout")
	default:
		outcome = "error"
		err = errors.Trace(callErr)
	}

	span.SetAttributes(
		attribute.Int("wait.attempts", attempts),
		attribute.String("wait.outcome", outcome),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Truthy reports whether v counts as a satisfied condition: nil, zero values
// and empty strings, slices and maps do not.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	default:
		return !rv.IsZero()
	}
}
