package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/bootstrapgo/internal/bootstrap"
	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/logcfg"
)

// preLogger creates the logger used until the logging profile is resolved
// through the built loader. It does not set the global logger, allowing for
// isolated logger instances.
func preLogger(debug bool, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level}))
}

// profileLogger builds the final logger from the selected logging profile.
// Profile problems degrade to the built-in defaults, they never fail the
// launch. The debug flag lowers the default level but an explicit profile
// wins.
func profileLogger(ctx context.Context, profile string, debug bool, boot *bootstrap.Context, outW io.Writer) *slog.Logger {
	logger := ctxlog.FromContext(ctx)

	cfg := logcfg.DefaultConfig()
	if debug {
		cfg.Level = slog.LevelDebug
	}

	data, source, err := logcfg.Read(ctx, profile, boot.Loader)
	if err != nil {
		logger.Warn("Logging profile not found, using defaults.", "profile", logcfg.Resolve(profile))
		return logcfg.Logger(cfg, outW)
	}

	parsed, err := logcfg.Parse(data, source)
	if err != nil {
		logger.Warn("Failed to parse logging profile, using defaults.", "profile", source, "error", err)
		return logcfg.Logger(cfg, outW)
	}

	logger.Debug("Logging profile applied.", "profile", source)
	return logcfg.Logger(parsed, outW)
}
