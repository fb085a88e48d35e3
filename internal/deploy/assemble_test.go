package deploy_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bootstrapgo/internal/deploy"
	"github.com/vk/bootstrapgo/internal/testutil"
)

func TestAssemble_Bundled(t *testing.T) {
	inner := testutil.ArchiveBytes(t, map[string]string{"f": "f"})
	bundle := filepath.Join(t.TempDir(), "demo.bundle")
	testutil.WriteArchive(t, bundle, map[string]string{
		"meta/demo":       "demo.Main\n",
		"lib/zz.zip":      inner,
		"lib/aa.zip":      inner,
		"nested/deep.zip": inner,
		"docs/readme.txt": "not an archive",
	})

	locations, err := deploy.Assemble(context.Background(), deploy.Detection{
		Mode: deploy.ModeBundled,
		Root: bundle,
	})
	require.NoError(t, err)

	require.Len(t, locations, 4)
	assert.Equal(t, deploy.Location{Kind: deploy.KindArchive, Path: bundle}, locations[0])
	assert.Equal(t, deploy.Location{Kind: deploy.KindNested, Path: bundle, Member: "lib/aa.zip"}, locations[1])
	assert.Equal(t, deploy.Location{Kind: deploy.KindNested, Path: bundle, Member: "lib/zz.zip"}, locations[2])
	assert.Equal(t, deploy.Location{Kind: deploy.KindNested, Path: bundle, Member: "nested/deep.zip"}, locations[3])
}

func TestAssemble_BundledWithoutNestedArchives(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "demo.bundle")
	testutil.WriteArchive(t, bundle, map[string]string{"meta/demo": "demo.Main\n"})

	locations, err := deploy.Assemble(context.Background(), deploy.Detection{
		Mode: deploy.ModeBundled,
		Root: bundle,
	})
	require.NoError(t, err)

	require.Len(t, locations, 1)
	assert.Equal(t, deploy.KindArchive, locations[0].Kind)
}

func TestAssemble_BundledMissingBundle(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.bundle")

	_, err := deploy.Assemble(context.Background(), deploy.Detection{
		Mode: deploy.ModeBundled,
		Root: missing,
	})

	var asmErr *deploy.AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, missing, asmErr.Location.Path)
}

func TestAssemble_Exploded(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"meta/demo": "demo.Main\n"})
	testutil.WriteArchive(t, filepath.Join(root, "zz.zip"), map[string]string{"f": "f"})
	testutil.WriteArchive(t, filepath.Join(root, "lib", "aa.zip"), map[string]string{"f": "f"})
	testutil.WriteArchive(t, filepath.Join(root, "lib", "deep", "bb.zip"), map[string]string{"f": "f"})

	locations, err := deploy.Assemble(context.Background(), deploy.Detection{
		Mode: deploy.ModeExploded,
		Root: root,
	})
	require.NoError(t, err)

	require.Len(t, locations, 4)
	assert.Equal(t, deploy.Location{Kind: deploy.KindDir, Path: root}, locations[0])

	tail := []string{locations[1].String(), locations[2].String(), locations[3].String()}
	assert.IsNonDecreasing(t, tail)
	assert.Contains(t, tail, filepath.ToSlash(filepath.Join(root, "zz.zip")))
	assert.Contains(t, tail, filepath.ToSlash(filepath.Join(root, "lib", "aa.zip")))
	assert.Contains(t, tail, filepath.ToSlash(filepath.Join(root, "lib", "deep", "bb.zip")))
}

func TestAssemble_Deterministic(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"meta/demo": "demo.Main\n"})
	for _, name := range []string{"c.zip", "a.zip", "b/nested.zip"} {
		testutil.WriteArchive(t, filepath.Join(root, name), map[string]string{"f": "f"})
	}
	det := deploy.Detection{Mode: deploy.ModeExploded, Root: root}

	first, err := deploy.Assemble(context.Background(), det)
	require.NoError(t, err)
	second, err := deploy.Assemble(context.Background(), det)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssemble_Development(t *testing.T) {
	locations, err := deploy.Assemble(context.Background(), deploy.Detection{
		Mode: deploy.ModeDevelopment,
		Root: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestLocation_String(t *testing.T) {
	testCases := []struct {
		name     string
		location deploy.Location
		expected string
	}{
		{
			name:     "directory carries trailing separator",
			location: deploy.Location{Kind: deploy.KindDir, Path: "/opt/app"},
			expected: "/opt/app/",
		},
		{
			name:     "archive is its path",
			location: deploy.Location{Kind: deploy.KindArchive, Path: "/opt/app/lib.zip"},
			expected: "/opt/app/lib.zip",
		},
		{
			name:     "nested archive uses member separator",
			location: deploy.Location{Kind: deploy.KindNested, Path: "/opt/demo.bundle", Member: "lib/a.zip"},
			expected: "/opt/demo.bundle!/lib/a.zip",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.location.String())
		})
	}
}
