// Package hello is the demonstration application compiled into the default
// launcher. It greets, echoes its argument vector and dumps the launch
// properties.
package hello

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/entrypoint"
	"github.com/vk/bootstrapgo/internal/props"
)

// Name is the entry point name configuration resources select.
const Name = "hello"

// Main implements the entry point contract.
type Main struct {
	Out io.Writer
}

// New constructs the entry point writing to stdout.
func New() entrypoint.Main {
	return &Main{Out: os.Stdout}
}

// Register adds the entry point to the given table.
func Register(table *entrypoint.Table) {
	table.Register(Name, New)
}

// Run prints the greeting, the arguments and the launch properties. The
// greeting text can be overridden through the 'greeting' property.
func (m *Main) Run(ctx context.Context, args []string) (int, error) {
	ctxlog.FromContext(ctx).Info("Hello application starting.", "args", len(args))

	store := props.FromContext(ctx)
	greeting, ok := store.Get("greeting")
	if !ok {
		greeting = "Hello!"
	}
	fmt.Fprintln(m.Out, greeting)

	for i, arg := range args {
		fmt.Fprintf(m.Out, "  arg[%d] = %q\n", i, arg)
	}

	// Sort keys for consistent output
	snapshot := store.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(m.Out, "  %s = %q\n", key, snapshot[key])
	}

	return 0, nil
}
