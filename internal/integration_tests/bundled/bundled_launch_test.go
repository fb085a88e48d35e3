package integration_tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bootstrapgo/internal/app"
	"github.com/vk/bootstrapgo/internal/deploy"
	"github.com/vk/bootstrapgo/internal/entrypoint"
	"github.com/vk/bootstrapgo/internal/loader"
	"github.com/vk/bootstrapgo/internal/props"
	"github.com/vk/bootstrapgo/internal/testutil"
)

// bundleSpyMain records both the properties it launched with and the
// content of one resource resolved through the launch loader.
type bundleSpyMain struct {
	asset    string
	content  string
	gotProps map[string]string
}

func (m *bundleSpyMain) Run(ctx context.Context, args []string) (int, error) {
	m.gotProps = props.FromContext(ctx).Snapshot()
	data, err := loader.FromContext(ctx).ReadFile(ctx, m.asset)
	if err != nil {
		return 0, err
	}
	m.content = string(data)
	return 0, nil
}

func tableWith(name string, m entrypoint.Main) *entrypoint.Table {
	table := entrypoint.NewTable()
	table.Register(name, func() entrypoint.Main { return m })
	return table
}

func TestBundled_Launch_ServesNestedArchives(t *testing.T) {
	// --- Arrange ---
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	inner := testutil.ArchiveBytes(t, map[string]string{
		"vendor/tool.txt": "nested tool",
	})
	bundlePath := filepath.Join(root, "demo.bundle")
	testutil.WriteArchive(t, bundlePath, map[string]string{
		"meta/demo":     "spy\nsource=bundle\n",
		"lib/inner.zip": inner,
	})

	main := &bundleSpyMain{asset: "vendor/tool.txt"}

	// --- Act ---
	result := testutil.RunLauncher(t, app.Config{
		Identity: "demo",
		Roots:    []string{root},
	}, tableWith("spy", main))

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, "nested tool", main.content)
	assert.Equal(t, "bundle", main.gotProps["source"])

	boot := result.App.Bootstrap()
	assert.Equal(t, deploy.ModeBundled, boot.Mode)
	assert.Equal(t, bundlePath, boot.Root)
	require.Len(t, boot.Locations, 2)
	assert.Equal(t, deploy.KindArchive, boot.Locations[0].Kind)
	assert.Equal(t, deploy.KindNested, boot.Locations[1].Kind)
	testutil.AssertLaunched(t, result, "spy")
}

func TestBundled_Launch_BundleShadowsPlainFiles(t *testing.T) {
	// --- Arrange ---
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"meta/demo": "spy\nsource=file\n",
	})
	testutil.WriteArchive(t, filepath.Join(root, "demo.bundle"), map[string]string{
		"meta/demo":       "spy\nsource=bundle\n",
		"vendor/tool.txt": "bundled tool",
		"lib/empty.zip":   testutil.ArchiveBytes(t, map[string]string{"placeholder": ""}),
	})

	main := &bundleSpyMain{asset: "vendor/tool.txt"}

	// --- Act ---
	result := testutil.RunLauncher(t, app.Config{
		Identity: "demo",
		Roots:    []string{root},
	}, tableWith("spy", main))

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, "bundle", main.gotProps["source"],
		"a discovered bundle must win over a plain configuration file")
	assert.Equal(t, deploy.ModeBundled, result.App.Bootstrap().Mode)
}

func TestBundled_ExplicitBundlePath_SkipsDiscovery(t *testing.T) {
	// --- Arrange ---
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stash := t.TempDir()
	bundlePath := filepath.Join(stash, "custom.bundle")
	testutil.WriteArchive(t, bundlePath, map[string]string{
		"meta/demo":       "spy\n",
		"vendor/tool.txt": "custom tool",
		"lib/inner.zip":   testutil.ArchiveBytes(t, map[string]string{"placeholder": ""}),
	})

	main := &bundleSpyMain{asset: "vendor/tool.txt"}

	// --- Act ---
	result := testutil.RunLauncher(t, app.Config{
		Identity:   "demo",
		Roots:      []string{t.TempDir()},
		BundlePath: bundlePath,
	}, tableWith("spy", main))

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, "custom tool", main.content)
	assert.Equal(t, bundlePath, result.App.Bootstrap().Root)
}
