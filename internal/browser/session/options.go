// internal/browser/session/options.go
package session

import (
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/xkilldash9x/scroll-align/internal/config"
)

// Window size used when the configuration leaves the viewport unset.
const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
)

// getBrowserExecOptions translates the application config into chromedp allocator options.
func getBrowserExecOptions(cfg config.Interface) []chromedp.ExecAllocatorOption {
	browserCfg := cfg.Browser()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	// DefaultExecAllocatorOptions already includes headless mode.
	if !browserCfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if browserCfg.DisableGPU {
		opts = append(opts, chromedp.DisableGPU)
	}
	if browserCfg.IgnoreTLSErrors {
		opts = append(opts, chromedp.IgnoreCertErrors)
	}

	width, height := windowSize(browserCfg)
	opts = append(opts, chromedp.WindowSize(width, height))

	for _, arg := range browserCfg.Args {
		// chromedp.Flag adds the leading dashes itself.
		arg = strings.TrimLeft(strings.TrimSpace(arg), "-")
		if arg == "" {
			continue
		}
		if key, value, ok := strings.Cut(arg, "="); ok {
			opts = append(opts, chromedp.Flag(key, value))
			continue
		}
		opts = append(opts, chromedp.Flag(arg, true))
	}
	return opts
}

// windowSize reads the configured viewport, filling in defaults for missing
// or zero dimensions.
func windowSize(cfg config.BrowserConfig) (int, int) {
	width, height := cfg.Viewport["width"], cfg.Viewport["height"]
	if width <= 0 {
		width = defaultWindowWidth
	}
	if height <= 0 {
		height = defaultWindowHeight
	}
	return width, height
}
