// File: cmd/helpers_test.go
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/scroll-align/internal/config"
	"github.com/xkilldash9x/scroll-align/internal/observability"
)

// resetForTest isolates a test from global logger state and from any
// config.yaml in the working directory. It returns the buffer log output
// lands in.
func resetForTest(t *testing.T) *bytes.Buffer {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var logs bytes.Buffer
	observability.Initialize(config.LoggerConfig{Level: "debug", Format: "console"}, zapcore.AddSync(&logs))
	return &logs
}

// executeCommand runs a fresh command tree and returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCommand()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// pageSnapshot renders a snapshot of a 1280x800 page 4000px tall, scrolled
// to scrollY, whose 200x100 target "card" sits at document offset targetTop
// inside "body".
func pageSnapshot(scrollY, targetTop float64) string {
	return fmt.Sprintf(`{
  "url": "https://example.test/",
  "viewport": {"width": 1280, "height": 800, "scrollX": 0, "scrollY": %[1]v},
  "target": "card",
  "documentElement": "html",
  "body": "body",
  "nodes": [
    {"id": "card", "tag": "div", "parent": "body",
     "rect": {"top": %[2]v, "left": 100, "width": 200, "height": 100},
     "client": {"width": 200, "height": 100}, "scroll": {"width": 200, "height": 100}},
    {"id": "body", "tag": "body", "parent": "html",
     "rect": {"top": %[3]v, "left": 0, "width": 1280, "height": 4000},
     "client": {"width": 1280, "height": 4000}, "scroll": {"width": 1280, "height": 4000}},
    {"id": "html", "tag": "html",
     "rect": {"top": %[3]v, "left": 0, "width": 1280, "height": 4000},
     "client": {"width": 1280, "height": 800}, "scroll": {"width": 1280, "height": 4000}}
  ]
}`, scrollY, targetTop-scrollY, -scrollY)
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
