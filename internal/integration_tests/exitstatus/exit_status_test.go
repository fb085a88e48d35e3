package integration_tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bootstrapgo/internal/app"
	"github.com/vk/bootstrapgo/internal/dispatch"
	"github.com/vk/bootstrapgo/internal/entrypoint"
	"github.com/vk/bootstrapgo/internal/testutil"
)

// exitMain returns a fixed status and error, simulating entry points that
// report their own outcome.
type exitMain struct {
	status int
	err    error
}

func (m *exitMain) Run(ctx context.Context, args []string) (int, error) {
	return m.status, m.err
}

// panicMain simulates an entry point that blows up instead of returning.
type panicMain struct{}

func (m *panicMain) Run(ctx context.Context, args []string) (int, error) {
	panic("boom")
}

func launch(t *testing.T, config string, name string, m entrypoint.Main) *testutil.HarnessResult {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"meta/demo": config,
	})

	table := entrypoint.NewTable()
	table.Register(name, func() entrypoint.Main { return m })

	return testutil.RunLauncher(t, app.Config{
		Identity: "demo",
		Roots:    []string{root},
	}, table)
}

func TestExitStatus_DeclaredStatus_IsReturned(t *testing.T) {
	result := launch(t, "exit\n", "exit", &exitMain{status: 7})

	require.NoError(t, result.Err)
	assert.Equal(t, 7, result.Status)
}

func TestExitStatus_FailedRun_KeepsReportedStatus(t *testing.T) {
	injected := errors.New("went wrong")

	result := launch(t, "exit\n", "exit", &exitMain{status: 7, err: injected})

	require.Error(t, result.Err)
	assert.Equal(t, 7, result.Status)
	assert.ErrorIs(t, result.Err, injected,
		"the entry point error must stay reachable through the wrap")

	var execErr *dispatch.ExecutionError
	require.ErrorAs(t, result.Err, &execErr)
	assert.Equal(t, "exit", execErr.Name)
}

func TestExitStatus_FailedRun_DefaultsToStatusOne(t *testing.T) {
	result := launch(t, "exit\n", "exit", &exitMain{err: errors.New("went wrong")})

	require.Error(t, result.Err)
	assert.Equal(t, 1, result.Status,
		"an error with status zero must not look like success")
}

func TestExitStatus_PanickingEntryPoint_IsContained(t *testing.T) {
	result := launch(t, "exit\n", "exit", &panicMain{})

	require.Error(t, result.Err)
	assert.Equal(t, 1, result.Status)

	var execErr *dispatch.ExecutionError
	require.ErrorAs(t, result.Err, &execErr)
	assert.Contains(t, execErr.Error(), "panic: boom")
}

func TestExitStatus_EmptyConfiguration_IsRejected(t *testing.T) {
	result := launch(t, "# nothing but comments\n\n", "exit", &exitMain{})

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, dispatch.ErrEmptyConfiguration)
	assert.Equal(t, 0, result.Status)
}

func TestExitStatus_UnknownEntryPoint_IsRejected(t *testing.T) {
	result := launch(t, "ghost\n", "exit", &exitMain{})

	require.Error(t, result.Err)

	var resErr *dispatch.ResolutionError
	require.ErrorAs(t, result.Err, &resErr)
	assert.Equal(t, "ghost", resErr.Name)
	assert.EqualError(t, resErr, "entry point 'ghost' is not registered")
}
