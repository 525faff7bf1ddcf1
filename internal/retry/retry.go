// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package retry

import (
	"context"
	"slices"

	"github.com/juju/pacing-testkit/internal/wait"
)

// Do is a function type to execute an operation.
type Do[T any] = wait.Predicate[T]

// Assert is a function type that takes data and returns an error if the assertion fails.
type Assert[T any] = wait.Assert[T]

// Policy is the timing configuration of the retries.
type Policy = wait.Policy

// RetryOnKindsCfg is a configuration structure for the RetryOnKinds function.
type RetryOnKindsCfg[T any] struct {
	Context context.Context

	// Do is the operation to retry.
	Do Do[T]
	// DataAssertions is a list of assertions to check the data against.
	// A failed assertion has kind wait.KindAssertion.
	DataAssertions []Assert[T]
	// RetriableKinds are the error kinds to retry on.
	RetriableKinds []wait.ErrorKind

	// Policy configures timing and classification. Its Retryable list is
	// replaced by RetriableKinds. If not provided, default values will be used.
	Policy *Policy
}

// RetryOnKinds calls Do until it returns a truthy value, retrying only
// errors whose kind is one of RetriableKinds.
func RetryOnKinds[T any](cfg RetryOnKindsCfg[T]) (T, error) {
	policy := wait.DefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	policy.Retryable = slices.Clone(cfg.RetriableKinds)
	if len(policy.Retryable) == 0 {
		// An empty allow-list would retry everything.
		policy.Retryable = []wait.ErrorKind{wait.KindAssertion}
	}
	return wait.WaitFor(wait.WaitForCfg[T]{
		Context:    cfg.Context,
		Predicate:  cfg.Do,
		Assertions: cfg.DataAssertions,
		Policy:     &policy,
	})
}
