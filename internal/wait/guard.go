// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package wait

import (
	"context"
	"sync/atomic"
)

type activeWaitKey struct{}

// activeWait marks a context as belonging to a running wait. The mark is
// cleared when the wait returns, so a context that outlives its wait can be
// reused for a new one.
type activeWait struct {
	running atomic.Bool
}

// enter returns a context marked as running a wait, and the function that
// clears the mark. It fails with ErrNestedWait if ctx already belongs to a
// running wait.
func enter(ctx context.Context) (context.Context, func(), error) {
	if outer, ok := ctx.Value(activeWaitKey{}).(*activeWait); ok && outer.running.Load() {
		return nil, nil, ErrNestedWait
	}
	w := &activeWait{}
	w.running.Store(true)
	return context.WithValue(ctx, activeWaitKey{}, w), func() { w.running.Store(false) }, nil
}

// Active reports whether ctx belongs to a running wait.
func Active(ctx context.Context) bool {
	w, ok := ctx.Value(activeWaitKey{}).(*activeWait)
	return ok && w.running.Load()
}
