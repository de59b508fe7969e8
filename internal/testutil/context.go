package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithCancel создаёт context, который отменяется при завершении теста.
// The returned cancel may be called earlier to simulate shutdown.
func ContextWithCancel(tb testing.TB) (context.Context, context.CancelFunc) {
	tb.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)
	return ctx, cancel
}

// ContextWithTimeout bounds a test that waits on background loops.
func ContextWithTimeout(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)
	return ctx
}
