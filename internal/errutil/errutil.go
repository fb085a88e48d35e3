// Package errutil provides helpers for errors that are intentionally
// discarded or reported out-of-band instead of propagated.
package errutil

import (
	"context"
	"runtime"

	"github.com/vk/bootstrapgo/internal/ctxlog"
)

// Ignore records an intentionally discarded error at debug level. It is a
// no-op for nil errors. Use it where an error carries no actionable signal,
// like a failed close on a read-only file.
func Ignore(ctx context.Context, err error) {
	if err == nil {
		return
	}
	ctxlog.FromContext(ctx).Debug("Ignoring error.", "error", err)
}

// Warn records a discarded error at warn level. It is a no-op for nil
// errors. Use it where the failure degrades behavior but must not stop the
// launch.
func Warn(ctx context.Context, err error) {
	if err == nil {
		return
	}
	ctxlog.FromContext(ctx).Warn("Continuing after error.", "error", err)
}

// Stack returns the formatted stack trace of the calling goroutine. It is
// attached to top-level failure reports where the cause was a panic.
func Stack() string {
	buf := make([]byte, 64<<10)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
