package logcfg_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bootstrapgo/internal/deploy"
	"github.com/vk/bootstrapgo/internal/entrypoint"
	"github.com/vk/bootstrapgo/internal/loader"
	"github.com/vk/bootstrapgo/internal/logcfg"
	"github.com/vk/bootstrapgo/internal/testutil"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		selector string
		expected string
	}{
		{"", logcfg.ProfileDefault},
		{"default", logcfg.ProfileDefault},
		{"verbose", logcfg.ProfileVerbose},
		{"debug", logcfg.ProfileDebug},
		{"conf/custom.hcl", "conf/custom.hcl"},
	}

	for _, tc := range testCases {
		t.Run(tc.selector, func(t *testing.T) {
			assert.Equal(t, tc.expected, logcfg.Resolve(tc.selector))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("full profile", func(t *testing.T) {
		src := `
logging {
  level  = "debug"
  format = "json"
  source = true

  attributes {
    service = "demo"
    zone    = "eu-1"
  }
}
`
		cfg, err := logcfg.Parse([]byte(src), "test.hcl")
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.True(t, cfg.AddSource)
		assert.Equal(t, []logcfg.Attribute{
			{Key: "service", Value: "demo"},
			{Key: "zone", Value: "eu-1"},
		}, cfg.Attributes, "attributes must come out sorted by key")
	})

	t.Run("defaults fill omitted fields", func(t *testing.T) {
		cfg, err := logcfg.Parse([]byte("logging {}\n"), "test.hcl")
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.Level)
		assert.Equal(t, "text", cfg.Format)
		assert.False(t, cfg.AddSource)
		assert.Empty(t, cfg.Attributes)
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		_, err := logcfg.Parse([]byte("logging {\n  level = \"loud\"\n}\n"), "test.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid level")
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		_, err := logcfg.Parse([]byte("logging {\n  format = \"xml\"\n}\n"), "test.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("missing logging block rejected", func(t *testing.T) {
		_, err := logcfg.Parse([]byte("\n"), "test.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no logging block")
	})

	t.Run("malformed source rejected", func(t *testing.T) {
		_, err := logcfg.Parse([]byte("logging {"), "test.hcl")
		assert.Error(t, err)
	})
}

func TestRead(t *testing.T) {
	profile := "logging {\n  level = \"warn\"\n}\n"

	t.Run("file wins over loader resource", func(t *testing.T) {
		dir := t.TempDir()
		filePath := filepath.Join(dir, "custom.hcl")
		require.NoError(t, os.WriteFile(filePath, []byte(profile), 0o644))

		data, source, err := logcfg.Read(context.Background(), filePath, nil)
		require.NoError(t, err)
		assert.Equal(t, profile, string(data))
		assert.Equal(t, filePath, source)
	})

	t.Run("falls back to loader resource", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.zip")
		b := filepath.Join(dir, "b.zip")
		testutil.WriteArchive(t, a, map[string]string{logcfg.ProfileVerbose: profile})
		testutil.WriteArchive(t, b, map[string]string{"x": "x"})

		ldr, err := loader.Build(context.Background(), loader.NewAmbient(entrypoint.NewTable()), []deploy.Location{
			{Kind: deploy.KindArchive, Path: a},
			{Kind: deploy.KindArchive, Path: b},
		})
		require.NoError(t, err)
		defer ldr.Close()

		data, source, err := logcfg.Read(context.Background(), "verbose", ldr)
		require.NoError(t, err)
		assert.Equal(t, profile, string(data))
		assert.Equal(t, logcfg.ProfileVerbose, source)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		_, _, err := logcfg.Read(context.Background(), "nowhere.hcl", nil)
		assert.ErrorIs(t, err, logcfg.ErrProfileNotFound)
	})
}

func TestLogger(t *testing.T) {
	t.Run("honors level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logcfg.Logger(&logcfg.Config{Level: slog.LevelWarn, Format: "text"}, &buf)

		logger.Info("hidden")
		logger.Warn("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logcfg.Logger(&logcfg.Config{Level: slog.LevelInfo, Format: "json"}, &buf)

		logger.Info("hello")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("static attributes stamped", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := &logcfg.Config{
			Level:      slog.LevelInfo,
			Format:     "text",
			Attributes: []logcfg.Attribute{{Key: "service", Value: "demo"}},
		}

		logcfg.Logger(cfg, &buf).Info("hello")
		assert.Contains(t, buf.String(), "service=demo")
	})
}
