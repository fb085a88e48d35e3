package app

import (
	"context"

	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/dispatch"
)

// Run opens the configuration resource and dispatches the declared entry
// point. The returned status is the process exit status.
func (a *App) Run(ctx context.Context) (int, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	status, err := dispatch.Run(ctx, a.boot.Resource, a.boot.Loader, a.boot.Props, a.config.Args)
	if err != nil {
		return status, err
	}

	a.logger.Debug("App.Run method finished.", "status", status)
	return status, nil
}
