// Package xsync runs background work so that a panic is logged instead of
// taking the process down.
package xsync

import (
	"context"

	"github.com/garrettladley/sugang/internal/xslog"
)

// Recover must be deferred directly by the function it guards.
func Recover(ctx context.Context, msg string) {
	if err := recover(); err != nil {
		xslog.FromContext(ctx).ErrorContext(ctx, msg, xslog.ErrorGroupWithStack(err))
	}
}

// Guard wraps f so that a panic inside it is recovered and logged.
func Guard(ctx context.Context, msg string, f func()) func() {
	return func() {
		defer Recover(ctx, msg)
		f()
	}
}

// Go runs f on a new goroutine under Guard.
func Go(ctx context.Context, msg string, f func()) {
	go Guard(ctx, msg, f)()
}
