package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/bootstrapgo/internal/bootstrap"
	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/entrypoint"
	"github.com/vk/bootstrapgo/internal/errutil"
	"github.com/vk/bootstrapgo/internal/prefs"
)

// prefLogProfile is the preferences key naming the logging profile used
// when neither the environment nor the caller selects one.
const prefLogProfile = "logging.profile"

// App encapsulates one configured launch: the bootstrap result, the final
// logger and the launch configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	boot   *bootstrap.Context
}

// New is the constructor for the launcher application. It runs the full
// bootstrap pipeline and configures the final logger from the logging
// profile resolved through the built loader. The returned App is ready to
// dispatch.
func New(ctx context.Context, outW io.Writer, cfg *Config, table *entrypoint.Table) (*App, error) {
	logger := preLogger(cfg.Debug, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Pre-logger configured.")

	// Preferences are a convenience; a broken file must not block the
	// launch.
	profile := cfg.LogProfile
	store, err := prefs.Open(ctx, cfg.Identity)
	if err != nil {
		errutil.Warn(ctx, err)
	} else if profile == "" {
		if stored, ok := store.Get(prefLogProfile); ok {
			profile = stored
			logger.Debug("Logging profile taken from preferences.", "profile", profile)
		}
	}

	registry, err := newHandlerRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	boot, err := bootstrap.Run(ctx, bootstrap.Options{
		Identity:   cfg.Identity,
		Variant:    cfg.Variant,
		Roots:      cfg.Roots,
		BundlePath: cfg.BundlePath,
		Table:      table,
		Protocols:  registry,
	})
	if err != nil {
		return nil, err
	}

	final := profileLogger(ctx, profile, cfg.Debug, boot, outW)

	return &App{
		outW:   outW,
		logger: final.With("run_id", boot.RunID.String()),
		config: cfg,
		boot:   boot,
	}, nil
}

// Bootstrap returns the bootstrap result. This is primarily for testing.
func (a *App) Bootstrap() *bootstrap.Context {
	return a.boot
}

// Close releases the archives the bootstrap loader holds open.
func (a *App) Close() error {
	return a.boot.Close()
}
