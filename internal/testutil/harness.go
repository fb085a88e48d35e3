package testutil

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/bootstrapgo/internal/app"
	"github.com/vk/bootstrapgo/internal/entrypoint"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Status    int
	Err       error
	App       *app.App
}

// RunLauncher provides a standardized harness for running launcher
// integration tests using a default background context.
func RunLauncher(t *testing.T, cfg app.Config, table *entrypoint.Table) *HarnessResult {
	t.Helper()
	return RunLauncherWithContext(context.Background(), t, cfg, table)
}

// RunLauncherWithContext builds and runs the launcher application against
// cfg, capturing its log output. Construction failures surface in the
// result with a nil App.
func RunLauncherWithContext(ctx context.Context, t *testing.T, cfg app.Config, table *entrypoint.Table) *HarnessResult {
	t.Helper()

	logBuffer := &SafeBuffer{}
	var outW io.Writer = logBuffer
	if os.Getenv("BOOTSTRAPGO_TEST_LOGS") == "true" {
		outW = io.MultiWriter(logBuffer, os.Stderr)
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err, "harness received an invalid launcher config")

	testApp, err := app.New(ctx, outW, appConfig, table)
	if err != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       err,
		}
	}
	t.Cleanup(func() { _ = testApp.Close() })

	status, runErr := testApp.Run(ctx)

	if os.Getenv("BOOTSTRAPGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Status:    status,
		Err:       runErr,
		App:       testApp,
	}
}
