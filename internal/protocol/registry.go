package protocol

import (
	"log/slog"
	"sync"
)

// Registry maps locator schemes to handler factories. It implements
// HandlerFactory itself, so it can occupy the process handler-factory slot
// and multiplex it across registrations.
type Registry struct {
	mu       sync.RWMutex
	prior    HandlerFactory
	byScheme map[string]HandlerFactory
}

// NewRegistry creates a registry that falls back to prior for schemes
// without a registration. A nil prior means unknown schemes are unhandled.
func NewRegistry(prior HandlerFactory) *Registry {
	return &Registry{
		prior:    prior,
		byScheme: make(map[string]HandlerFactory),
	}
}

// Register maps scheme to factory and returns the factory it replaced. The
// bool reports whether a previous registration existed, so callers can tell
// a replaced factory from no factory.
func (r *Registry) Register(scheme string, factory HandlerFactory) (HandlerFactory, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.byScheme[scheme]
	r.byScheme[scheme] = factory
	slog.Debug("Registered protocol handler factory.", "scheme", scheme, "replaced", existed)
	return previous, existed
}

// Unregister removes the registration for scheme and returns it. The bool
// reports whether a registration existed.
func (r *Registry) Unregister(scheme string) (HandlerFactory, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.byScheme[scheme]
	delete(r.byScheme, scheme)
	return previous, existed
}

// Resolve returns the factory serving scheme: the registered one when
// present, otherwise the prior factory captured at construction. The bool is
// false only when neither exists.
func (r *Registry) Resolve(scheme string) (HandlerFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if factory, ok := r.byScheme[scheme]; ok {
		return factory, true
	}
	if r.prior != nil {
		return r.prior, true
	}
	return nil, false
}

// NewHandler implements HandlerFactory. A registered factory that declines
// the scheme falls through to the prior factory.
func (r *Registry) NewHandler(scheme string) (Handler, bool) {
	r.mu.RLock()
	registered, hasRegistered := r.byScheme[scheme]
	prior := r.prior
	r.mu.RUnlock()

	if hasRegistered {
		if h, ok := registered.NewHandler(scheme); ok {
			return h, true
		}
	}
	if prior != nil {
		return prior.NewHandler(scheme)
	}
	return nil, false
}

// Schemes returns the registered schemes. Order is unspecified.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.byScheme))
	for scheme := range r.byScheme {
		schemes = append(schemes, scheme)
	}
	return schemes
}
