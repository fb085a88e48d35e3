package logcfg

import (
	"io"
	"log/slog"
)

// DefaultConfig is the profile used when an application ships none: info
// level, text format, no source annotation.
func DefaultConfig() *Config {
	return &Config{Level: slog.LevelInfo, Format: "text"}
}

// Logger builds a slog.Logger writing to out as the profile describes. It
// does not touch the global default logger, so instances stay isolated.
func Logger(cfg *Config, out io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	for _, attr := range cfg.Attributes {
		logger = logger.With(attr.Key, attr.Value)
	}
	return logger
}
