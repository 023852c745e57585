// File: cmd/root_test.go
package cmd

import (
	"context"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scroll-align/internal/config"
)

func TestRootCmd_VersionFlag(t *testing.T) {
	resetForTest(t)

	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "scroll-align version Alpha")
}

func TestRootCmd_VersionCommand(t *testing.T) {
	resetForTest(t)

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "scroll-align version Alpha\n", out)
}

func TestRootCmd_NoArgs(t *testing.T) {
	resetForTest(t)

	out, err := executeCommand(t)
	require.NoError(t, err)
	// Help prints Long rather than Short when both are set.
	assert.Contains(t, out, "scroll-align walks an element's scrolling ancestors")
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "compute")
	assert.Contains(t, out, "capture")
}

func TestRootCmd_Configuration(t *testing.T) {
	decodeTop := func(t *testing.T, out string) float64 {
		t.Helper()
		var res computeOutput
		require.NoError(t, jsoniter.UnmarshalFromString(out, &res))
		return res.Delta.Top
	}

	t.Run("defaults apply without a config file", func(t *testing.T) {
		resetForTest(t)
		file := writeFile(t, t.TempDir(), "page.json", pageSnapshot(0, 2000))

		out, err := executeCommand(t, "compute", file)
		require.NoError(t, err)
		assert.Equal(t, 1650.0, decodeTop(t, out))
	})

	t.Run("config.yaml in the working directory is picked up", func(t *testing.T) {
		resetForTest(t)
		writeFile(t, ".", "config.yaml", "scroll:\n  block: start\n")
		file := writeFile(t, t.TempDir(), "page.json", pageSnapshot(0, 2000))

		out, err := executeCommand(t, "compute", file)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, decodeTop(t, out))
	})

	t.Run("explicit config file", func(t *testing.T) {
		resetForTest(t)
		dir := t.TempDir()
		cfgPath := writeFile(t, dir, "custom.yaml", "scroll:\n  block: end\nengine:\n  worker_concurrency: 2\n")
		file := writeFile(t, dir, "page.json", pageSnapshot(0, 2000))

		out, err := executeCommand(t, "--config", cfgPath, "compute", file)
		require.NoError(t, err)
		assert.Equal(t, 1300.0, decodeTop(t, out))
	})

	t.Run("flags beat the config file", func(t *testing.T) {
		resetForTest(t)
		writeFile(t, ".", "config.yaml", "scroll:\n  block: end\n")
		file := writeFile(t, t.TempDir(), "page.json", pageSnapshot(0, 2000))

		out, err := executeCommand(t, "compute", "--block", "start", file)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, decodeTop(t, out))
	})

	t.Run("environment overrides", func(t *testing.T) {
		resetForTest(t)
		t.Setenv("SCROLLALIGN_SCROLL_BLOCK", "start")
		file := writeFile(t, t.TempDir(), "page.json", pageSnapshot(0, 2000))

		out, err := executeCommand(t, "compute", file)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, decodeTop(t, out))
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		resetForTest(t)

		_, err := executeCommand(t, "--config", "does-not-exist.yaml", "compute", "page.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize configuration")
	})

	t.Run("invalid configuration value", func(t *testing.T) {
		resetForTest(t)
		t.Setenv("SCROLLALIGN_SCROLL_MODE", "sometimes")

		_, err := executeCommand(t, "compute", "page.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load or validate config")
		assert.Contains(t, err.Error(), "scroll.mode")
	})
}

func TestGetConfigFromContext(t *testing.T) {
	_, err := getConfigFromContext(context.Background())
	assert.ErrorContains(t, err, "configuration not found")

	cfg := config.NewDefaultConfig()
	got, err := getConfigFromContext(context.WithValue(context.Background(), configKey, cfg))
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}
