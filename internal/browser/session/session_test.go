// internal/browser/session/session_test.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/scroll-align/internal/browser/capture"
	"github.com/xkilldash9x/scroll-align/internal/config"
	"github.com/xkilldash9x/scroll-align/internal/scroll"
)

const testTimeout = 45 * time.Second

const tallPage = `<!doctype html>
<html><head><style>
  html, body { margin: 0; }
  #spacer { height: 2000px; }
  #card { width: 200px; height: 100px; margin-left: 100px; }
  #tail { height: 3000px; }
</style></head>
<body><div id="spacer"></div><div id="card">card</div><div id="tail"></div></body></html>`

// requireBrowser skips the test unless a Chrome binary is available.
func requireBrowser(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("no Chrome binary found on PATH")
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	requireBrowser(t)

	cfg := config.NewDefaultConfig()
	cfg.NetworkCfg.PostLoadWait = 0
	cfg.BrowserCfg.Viewport = map[string]int{"width": 1280, "height": 800}

	s, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})
	return s
}

func createStaticTestServer(t *testing.T, htmlContent string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, htmlContent)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSession(t *testing.T) {
	t.Run("NavigateAndEvaluate", func(t *testing.T) {
		s := newTestSession(t)
		server := createStaticTestServer(t, tallPage)

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		require.NoError(t, s.Navigate(ctx, server.URL))

		var res json.RawMessage
		require.NoError(t, s.Executor().Evaluate(ctx, "document.getElementById('card').textContent", &res))
		assert.JSONEq(t, `"card"`, string(res))
	})

	t.Run("ScrollIntoView", func(t *testing.T) {
		s := newTestSession(t)
		server := createStaticTestServer(t, tallPage)

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		require.NoError(t, s.Navigate(ctx, server.URL))

		logger := zaptest.NewLogger(t)
		driver := capture.NewDriver(capture.NewCapturer(s.Executor(), logger), 5, 50*time.Millisecond, logger)
		applied, err := driver.ScrollIntoView(ctx, "#card", "", scroll.Options{Block: scroll.AlignStart})
		require.NoError(t, err)
		require.NotEmpty(t, applied)
		assert.Equal(t, 2000.0, applied[0].Top)

		var scrollY float64
		require.NoError(t, s.RunActions(ctx, chromedp.Evaluate("window.scrollY", &scrollY)))
		assert.Equal(t, 2000.0, scrollY)
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		s := newTestSession(t)
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		require.NoError(t, s.Close(ctx))
		require.NoError(t, s.Close(ctx))

		err := s.Navigate(ctx, "about:blank")
		assert.ErrorIs(t, err, ErrSessionClosed)
	})
}
