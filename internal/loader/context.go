package loader

import "context"

type loaderKey struct{}

// WithLoader returns a context carrying the loader. The dispatcher attaches
// the built loader before invoking the entry point, so hosted applications
// can read resources from their code locations.
func WithLoader(ctx context.Context, l *Loader) context.Context {
	return context.WithValue(ctx, loaderKey{}, l)
}

// FromContext returns the loader carried by ctx, or nil when there is none.
func FromContext(ctx context.Context) *Loader {
	if l, ok := ctx.Value(loaderKey{}).(*Loader); ok {
		return l
	}
	return nil
}
