// Package dispatch parses the configuration resource and hands control to
// the entry point it declares.
package dispatch

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/entrypoint"
	"github.com/vk/bootstrapgo/internal/errutil"
	"github.com/vk/bootstrapgo/internal/loader"
	"github.com/vk/bootstrapgo/internal/props"
	"github.com/vk/bootstrapgo/internal/resource"
)

// Run parses the configuration resource, applies its properties to store,
// resolves the declared entry point through the loader and invokes it with
// the unmodified argument vector.
//
// The returned status is meaningful when err is nil or an *ExecutionError;
// every other error happens before the entry point runs.
func Run(ctx context.Context, res *resource.Resource, ldr *loader.Loader, store *props.Store, args []string) (int, error) {
	logger := ctxlog.FromContext(ctx)

	name, err := parse(ctx, res, store)
	if err != nil {
		return 0, err
	}

	factory, ok := ldr.ResolveMain(name)
	if !ok {
		return 0, &ResolutionError{Name: name}
	}

	ctx = props.WithStore(ctx, store)
	ctx = loader.WithLoader(ctx, ldr)
	logger.Info("Launching application.", "entry_point", name, "args", len(args), "properties", store.Len())

	status, err := invoke(ctx, name, factory, args)
	if err != nil {
		return status, err
	}

	logger.Debug("Application finished.", "entry_point", name, "status", status)
	return status, nil
}

// invoke constructs and runs the entry point. Panics and returned errors
// are both folded into an *ExecutionError with a non-zero status.
func invoke(ctx context.Context, name string, factory entrypoint.Factory, args []string) (status int, err error) {
	defer func() {
		if r := recover(); r != nil {
			status = 1
			err = &ExecutionError{Name: name, Err: fmt.Errorf("panic: %v\n%s", r, errutil.Stack())}
		}
	}()

	main := factory()
	if main == nil {
		return 1, &ExecutionError{Name: name, Err: fmt.Errorf("factory returned no instance")}
	}

	status, runErr := main.Run(ctx, args)
	if runErr != nil {
		if status == 0 {
			status = 1
		}
		return status, &ExecutionError{Name: name, Err: runErr}
	}
	return status, nil
}

// parse reads the resource: the first non-blank, non-comment line names the
// entry point, the remaining such lines declare properties. Invalid property
// lines are reported and skipped, they never abort the launch.
func parse(ctx context.Context, res *resource.Resource, store *props.Store) (string, error) {
	logger := ctxlog.FromContext(ctx)

	rc, err := res.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open configuration resource %s: %w", res.Name, err)
	}
	defer func() { errutil.Ignore(ctx, rc.Close()) }()

	scanner := bufio.NewScanner(rc)

	name := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		name = line
		break
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read configuration resource %s: %w", res.Name, err)
	}
	if name == "" {
		return "", ErrEmptyConfiguration
	}
	logger.Debug("Entry point declared.", "name", name)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		key, value, ok := parseAssignment(line)
		if !ok {
			logger.Warn("Ignoring invalid property line.", "line", line)
			continue
		}
		store.Set(key, value)
		logger.Debug("Property applied.", "key", key)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read configuration resource %s: %w", res.Name, err)
	}

	return name, nil
}

// skipLine reports whether a trimmed configuration line carries no content:
// blank lines and '#' comments.
func skipLine(line string) bool {
	return len(line) == 0 || strings.HasPrefix(line, "#")
}

// parseAssignment splits one property line. A line without '=' declares a
// flag set to the true value. Lines with an empty key or an empty value are
// invalid.
func parseAssignment(line string) (string, string, bool) {
	splitIndex := strings.IndexByte(line, '=')
	if splitIndex < 0 {
		return line, props.TrueValue, true
	}

	key := strings.TrimSpace(line[:splitIndex])
	value := strings.TrimSpace(line[splitIndex+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
