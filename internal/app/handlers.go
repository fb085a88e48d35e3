package app

import (
	"context"
	"fmt"

	"github.com/vk/bootstrapgo/handlers/httpfetch"
	"github.com/vk/bootstrapgo/handlers/s3fetch"
	"github.com/vk/bootstrapgo/internal/errutil"
	"github.com/vk/bootstrapgo/internal/protocol"
	"github.com/vk/bootstrapgo/internal/resource"
)

// newHandlerRegistry builds the protocol registry of one launch: the builtin
// file and bundle handlers as prior, http and https always, s3 when an
// endpoint is configured. The registry is offered to the process-wide slot;
// a later launch in the same process keeps its own instance.
func newHandlerRegistry(ctx context.Context, cfg *Config) (*protocol.Registry, error) {
	registry := protocol.NewRegistry(resource.BuiltinFactory())

	fetcher := httpfetch.Factory()
	registry.Register(httpfetch.SchemeHTTP, fetcher)
	registry.Register(httpfetch.SchemeHTTPS, fetcher)

	if cfg.S3.Endpoint != "" {
		s3Factory, err := s3fetch.Factory(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to configure s3 handler: %w", err)
		}
		registry.Register(s3fetch.Scheme, s3Factory)
	}

	if err := protocol.Install(registry); err != nil {
		errutil.Ignore(ctx, err)
	}
	return registry, nil
}
