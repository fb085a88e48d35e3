// Package entrypoint defines the contract between the launcher and the
// applications compiled into it, and the table that resolves a declared
// entry point name to its implementation.
package entrypoint

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Main is the interface every hosted application implements. Run receives
// the unmodified argument vector and returns the process exit status.
type Main interface {
	Run(ctx context.Context, args []string) (int, error)
}

// Factory constructs a fresh Main instance for one launch.
type Factory func() Main

// Table maps entry point names to their factories. It is populated during
// binary initialization and read-only afterwards, so lookups need no locking.
type Table struct {
	factories map[string]Factory
}

// NewTable creates an empty entry point table.
func NewTable() *Table {
	return &Table{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name. Registering a nil factory or
// a name twice is a programmer error and panics.
func (t *Table) Register(name string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("entry point factory for '%s' is nil", name))
	}
	if _, exists := t.factories[name]; exists {
		panic(fmt.Sprintf("entry point with name '%s' already registered", name))
	}
	slog.Debug("Registering entry point.", "name", name)
	t.factories[name] = factory
}

// Resolve returns the factory registered under name.
func (t *Table) Resolve(name string) (Factory, bool) {
	factory, ok := t.factories[name]
	return factory, ok
}

// Names returns the registered entry point names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.factories))
	for name := range t.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
