package protocol

import (
	"context"
	"io"
)

// Handler opens the content behind a locator of the scheme it was created
// for.
type Handler interface {
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

// HandlerFactory creates handlers per scheme. The bool reports whether the
// factory serves the scheme at all.
type HandlerFactory interface {
	NewHandler(scheme string) (Handler, bool)
}

// HandlerFactoryFunc adapts a function to the HandlerFactory interface.
type HandlerFactoryFunc func(scheme string) (Handler, bool)

// NewHandler implements HandlerFactory.
func (f HandlerFactoryFunc) NewHandler(scheme string) (Handler, bool) {
	return f(scheme)
}
