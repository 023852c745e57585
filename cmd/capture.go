// File: cmd/capture.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scroll-align/api/schemas"
	"github.com/xkilldash9x/scroll-align/internal/browser/capture"
	"github.com/xkilldash9x/scroll-align/internal/browser/session"
	"github.com/xkilldash9x/scroll-align/internal/config"
	"github.com/xkilldash9x/scroll-align/internal/observability"
	"github.com/xkilldash9x/scroll-align/internal/snapshot"
)

const sessionCloseTimeout = 10 * time.Second

// pageSession is the part of a browser session the capture command needs.
type pageSession interface {
	Navigate(ctx context.Context, url string) error
	Executor() capture.Executor
	Close(ctx context.Context) error
}

// sessionFactory opens a browser session. Tests substitute a fake.
type sessionFactory func(ctx context.Context, cfg config.Interface, logger *zap.Logger) (pageSession, error)

func newBrowserSession(ctx context.Context, cfg config.Interface, logger *zap.Logger) (pageSession, error) {
	return session.New(ctx, cfg, logger)
}

// captureOptions holds the capture command's own flags.
type captureOptions struct {
	url              string
	selector         string
	boundarySelector string
	outPath          string
	apply            bool
}

// captureOutput is printed after a capture run.
type captureOutput struct {
	URL        string                `json:"url"`
	Selector   string                `json:"selector"`
	SnapshotID string                `json:"snapshotId,omitempty"`
	Delta      *schemas.ScrollDelta  `json:"delta,omitempty"`
	Applied    []schemas.ScrollDelta `json:"applied,omitempty"`
	// Error is set when --apply moved the page but it never settled.
	Error      string                `json:"error,omitempty"`
}

// newCaptureCmd creates and configures the `capture` command.
func newCaptureCmd(factory sessionFactory) *cobra.Command {
	var opts captureOptions

	captureCmd := &cobra.Command{
		Use:   "capture <url> <selector>",
		Short: "Captures an element's geometry from a live page",
		Long: `Opens the URL in Chrome, records the element matching the CSS selector
together with its ancestors, and prints the scroll delta that brings it into
view. With --apply the delta is applied and recomputed until the element
settles; with --out the snapshot is saved for later use with compute.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			applyScrollFlagOverrides(cmd, cfg)

			opts.url, opts.selector = args[0], args[1]
			return runCapture(ctx, logger, cfg, opts, factory, cmd.OutOrStdout())
		},
	}

	addScrollFlags(captureCmd)
	captureCmd.Flags().StringVar(&opts.boundarySelector, "boundary-selector", "", "CSS selector of an ancestor the walk must not leave")
	captureCmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write the captured snapshot to this .json, .yaml or .yml file")
	captureCmd.Flags().BoolVar(&opts.apply, "apply", false, "Scroll the page until the element settles")
	return captureCmd
}

// runCapture contains the core, testable logic of the capture command.
func runCapture(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	opts captureOptions,
	factory sessionFactory,
	out io.Writer,
) error {
	scrollOpts, err := cfg.Scroll().Options()
	if err != nil {
		return fmt.Errorf("invalid scroll options: %w", err)
	}
	if opts.outPath != "" {
		if _, err := snapshot.FormatFromPath(opts.outPath); err != nil {
			return err
		}
	}

	if timeout := cfg.Engine().DefaultTaskTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sess, err := factory(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), sessionCloseTimeout)
		defer cancel()
		if err := sess.Close(closeCtx); err != nil {
			logger.Warn("Failed to close browser session.", zap.Error(err))
		}
	}()

	if err := sess.Navigate(ctx, opts.url); err != nil {
		return err
	}

	capturer := capture.NewCapturer(sess.Executor(), logger)
	doc, err := capturer.Snapshot(ctx, opts.selector, opts.boundarySelector)
	if err != nil {
		return err
	}
	if opts.outPath != "" {
		if err := snapshot.Save(doc, opts.outPath); err != nil {
			return err
		}
		logger.Info("Snapshot saved.", zap.String("path", opts.outPath), zap.String("snapshot_id", doc.ID()))
	}

	result := captureOutput{URL: opts.url, Selector: opts.selector, SnapshotID: doc.ID()}
	if opts.apply {
		driver := capture.NewDriver(capturer, cfg.Scroll().MaxIterations, cfg.Scroll().SettleTime, logger)
		applied, err := driver.ScrollIntoView(ctx, opts.selector, opts.boundarySelector, scrollOpts)
		result.Applied = applied
		if errors.Is(err, capture.ErrNotSettled) {
			// The page has already moved, so report how far before failing.
			result.Error = err.Error()
			if werr := jsoniter.NewEncoder(out).Encode(result); werr != nil {
				logger.Warn("Failed to write partial result.", zap.Error(werr))
			}
			return err
		}
		if err != nil {
			return err
		}
	} else {
		computed, err := doc.Compute(scrollOpts)
		if err != nil {
			return fmt.Errorf("failed to compute scroll for %q: %w", opts.selector, err)
		}
		delta := snapshot.ToDelta(computed)
		result.Delta = &delta
	}

	if err := jsoniter.NewEncoder(out).Encode(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
