// Package bootstrap drives application startup: locate the configuration
// resource, classify the deployment, assemble the code locations and build
// the loader the dispatcher runs against.
//
// Run keeps no hidden state. Everything it produces is carried in the
// returned Context; the only process-wide side effect is installing the
// protocol handler registry when the caller does not inject one.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/deploy"
	"github.com/vk/bootstrapgo/internal/entrypoint"
	"github.com/vk/bootstrapgo/internal/loader"
	"github.com/vk/bootstrapgo/internal/props"
	"github.com/vk/bootstrapgo/internal/protocol"
	"github.com/vk/bootstrapgo/internal/resource"
)

// Options configures one bootstrap run.
type Options struct {
	// Identity is the application name. The configuration resource is looked
	// up under meta/<identity>[.<variant>].
	Identity string

	// Variant selects an alternate configuration resource.
	Variant string

	// Roots are the ambient search directories, usually the executable
	// directory and the working directory.
	Roots []string

	// BundlePath overrides bundle discovery with an explicit bundle path or
	// a remote locator the protocol registry can fetch.
	BundlePath string

	// Table resolves entry point names to the applications compiled into
	// the hosting binary.
	Table *entrypoint.Table

	// Protocols is the handler registry consulted for remote bundle
	// locators. When nil, a fresh registry over the builtin handlers is
	// created and installed as the process registry.
	Protocols *protocol.Registry
}

// Context is the immutable result of one bootstrap run.
type Context struct {
	RunID     uuid.UUID
	Identity  string
	Resource  *resource.Resource
	Mode      deploy.Mode
	Root      string
	Locations []deploy.Location
	Loader    *loader.Loader
	Protocols *protocol.Registry
	Props     *props.Store
}

// Close releases the archives the loader holds open.
func (c *Context) Close() error {
	return c.Loader.Close()
}

// Run executes the bootstrap pipeline. All failures before the entry point
// dispatch surface here as wrapped errors.
func Run(ctx context.Context, opts Options) (*Context, error) {
	if opts.Identity == "" {
		return nil, errors.New("application identity must not be empty")
	}
	if opts.Table == nil {
		return nil, errors.New("entry point table must not be nil")
	}

	runID := uuid.New()
	ctx = ctxlog.With(ctx, "run_id", runID.String())
	logger := ctxlog.FromContext(ctx)

	registry := opts.Protocols
	if registry == nil {
		registry = protocol.NewRegistry(resource.BuiltinFactory())
		if err := protocol.Install(registry); err != nil {
			return nil, fmt.Errorf("failed to install protocol handler registry: %w", err)
		}
	}

	locator := &resource.Locator{
		Identity:   opts.Identity,
		Variant:    opts.Variant,
		Roots:      opts.Roots,
		BundlePath: opts.BundlePath,
		Protocols:  registry,
	}
	res, err := locator.Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to locate configuration for '%s': %w", opts.Identity, err)
	}
	logger.Debug("Located application configuration.", "resource", res.Name, "locator", res.Locator)

	detection, err := deploy.Detect(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("failed to classify deployment: %w", err)
	}

	locations, err := deploy.Assemble(ctx, detection)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble code locations: %w", err)
	}

	ambient := loader.NewAmbient(opts.Table, opts.Roots...)
	ldr, err := loader.Build(ctx, ambient, locations)
	if err != nil {
		return nil, fmt.Errorf("failed to build application loader: %w", err)
	}

	logger.Info("Bootstrap complete.",
		"identity", opts.Identity,
		"mode", detection.Mode,
		"root", detection.Root,
		"locations", len(locations))

	return &Context{
		RunID:     runID,
		Identity:  opts.Identity,
		Resource:  res,
		Mode:      detection.Mode,
		Root:      detection.Root,
		Locations: locations,
		Loader:    ldr,
		Protocols: registry,
		Props:     props.NewStore(),
	}, nil
}
