// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package wait

import (
	"context"

	"github.com/juju/errors"
)

// ErrorKind classifies a predicate failure so a policy can decide whether to
// retry it or abort the wait.
type ErrorKind string

const (
	// KindGeneric is any error without a more specific classification.
	KindGeneric ErrorKind = "generic"
	// KindAssertion is a failed expectation on the predicate's value.
	KindAssertion ErrorKind = "assertion"
	// KindNotFound is a lookup that found nothing.
	KindNotFound ErrorKind = "not-found"
	// KindTimeout is a predicate attempt that itself timed out.
	KindTimeout ErrorKind = "timeout"
	// KindStaleReference is a handle to something that no longer exists,
	// for example a detached DOM element.
	KindStaleReference ErrorKind = "stale-reference"
	// KindElementGone is an element that is definitely not present.
	KindElementGone ErrorKind = "element-gone"
	// KindScript is an error raised by a script evaluated in the browser.
	KindScript ErrorKind = "script"
	// KindNestedWait is ErrNestedWait. It always aborts.
	KindNestedWait ErrorKind = "nested-wait"
)

// Classifier maps an error to its kind.
type Classifier func(error) ErrorKind

type kindError struct {
	kind ErrorKind
	err  error
}

func (e *kindError) Error() string {
	return e.err.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

func (e *kindError) Kind() ErrorKind {
	return e.kind
}

// WithKind tags err with kind so that KindOf reports it.
func WithKind(err error, kind ErrorKind) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// KindOf returns the kind of err. An explicit tag added by WithKind wins,
// then well known errors are recognised, and everything else is generic.
func KindOf(err error) ErrorKind {
	var tagged interface{ Kind() ErrorKind }
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNestedWait):
		return KindNestedWait
	case errors.As(err, &tagged):
		return tagged.Kind()
	case errors.Is(err, errors.NotFound):
		return KindNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindGeneric
	}
}
