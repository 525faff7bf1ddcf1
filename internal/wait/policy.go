// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package wait

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/juju/clock"
	"github.com/juju/collections/set"
)

const (
	// DefaultTimeout is used when neither the policy nor SetDefaults
	// provide a timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultPollInterval is the delay between two predicate calls.
	DefaultPollInterval = 250 * time.Millisecond
)

// Policy configures a single wait. The zero value uses the process defaults.
// A Policy is never modified by the waiter; the kind lists are copied before use.
type Policy struct {
	// Timeout is the maximum duration to wait for the condition to be met.
	Timeout time.Duration
	// PollInterval is the delay between predicate calls.
	PollInterval time.Duration
	// MaxPollInterval caps the delay when Backoff grows it.
	MaxPollInterval time.Duration
	// Backoff computes the next delay from the base delay and attempt number,
	// for example retry.DoubleDelay. Nil polls at a constant PollInterval.
	Backoff func(delay time.Duration, attempt int) time.Duration

	// NonRetryable lists the error kinds that abort the wait immediately.
	NonRetryable []ErrorKind
	// Retryable, when not empty, lists the only error kinds that are retried.
	// Every other kind aborts the wait.
	Retryable []ErrorKind
	// Classify maps predicate errors to kinds. Defaults to KindOf.
	Classify Classifier

	// Clock is the clock to use for timing.
	Clock clock.Clock
}

// WithNonRetryable returns a copy of p that also aborts on the given kinds.
func (p Policy) WithNonRetryable(kinds ...ErrorKind) Policy {
	p.NonRetryable = append(slices.Clone(p.NonRetryable), kinds...)
	return p
}

// WithTimeout returns a copy of p with the given timeout.
func (p Policy) WithTimeout(timeout time.Duration) Policy {
	p.Timeout = timeout
	return p
}

var defaults atomic.Pointer[Policy]

// SetDefaults installs the policy used for zero fields of every wait's
// policy. It is meant to be called once at startup, from configuration.
func SetDefaults(p Policy) {
	p.NonRetryable = slices.Clone(p.NonRetryable)
	p.Retryable = slices.Clone(p.Retryable)
	defaults.Store(&p)
}

// DefaultPolicy returns the process wide default policy.
func DefaultPolicy() Policy {
	if p := defaults.Load(); p != nil {
		return *p
	}
	return Policy{
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
		Clock:        clock.WallClock,
	}
}

// resolvedPolicy is a Policy with every default applied.
type resolvedPolicy struct {
	timeout  time.Duration
	delay    time.Duration
	maxDelay time.Duration
	backoff  func(time.Duration, int) time.Duration

	nonRetryable set.Strings
	retryable    set.Strings
	classify     Classifier
	clock        clock.Clock
}

func resolve(p *Policy) resolvedPolicy {
	def := DefaultPolicy()
	if p == nil {
		p = &def
	}
	r := resolvedPolicy{
		timeout:      p.Timeout,
		delay:        p.PollInterval,
		maxDelay:     p.MaxPollInterval,
		backoff:      p.Backoff,
		nonRetryable: kindSet(p.NonRetryable),
		retryable:    kindSet(p.Retryable),
		classify:     p.Classify,
		clock:        p.Clock,
	}
	if r.timeout <= 0 {
		r.timeout = def.Timeout
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.delay <= 0 {
		r.delay = def.PollInterval
	}
	if r.delay <= 0 {
		r.delay = DefaultPollInterval
	}
	if r.classify == nil {
		r.classify = KindOf
	}
	if r.clock == nil {
		r.clock = def.Clock
	}
	if r.clock == nil {
		r.clock = clock.WallClock
	}
	return r
}

func kindSet(kinds []ErrorKind) set.Strings {
	s := set.NewStrings()
	for _, k := range kinds {
		s.Add(string(k))
	}
	return s
}

// fatal reports whether an error of the given kind ends the wait.
func (r resolvedPolicy) fatal(kind ErrorKind) bool {
	switch {
	case kind == KindNestedWait:
		return true
	case r.nonRetryable.Contains(string(kind)):
		return true
	case !r.retryable.IsEmpty():
		return !r.retryable.Contains(string(kind))
	default:
		return false
	}
}
