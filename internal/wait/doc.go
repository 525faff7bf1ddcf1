// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

// Package wait provides utilities for waiting on conditions.
// A predicate is polled until it returns a truthy value, the policy's timeout
// elapses, or it fails with an error kind the caller marked as non-retryable.
// Waits cannot be nested: a wait started from inside another wait's predicate
// is rejected with ErrNestedWait.
package wait
