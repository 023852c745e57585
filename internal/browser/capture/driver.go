// internal/browser/capture/driver.go
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scroll-align/api/schemas"
	"github.com/xkilldash9x/scroll-align/internal/scroll"
	"github.com/xkilldash9x/scroll-align/internal/snapshot"
)

// ErrNotSettled is returned when the target still needs scrolling after the
// iteration limit.
var ErrNotSettled = errors.New("scroll did not settle")

// Driver repeatedly captures, computes and applies until the target is where
// the options want it. Layout that shifts during scrolling (lazy images,
// sticky headers) is absorbed by the next iteration.
type Driver struct {
	capturer      *Capturer
	logger        *zap.Logger
	maxIterations int
	settleTime    time.Duration
}

// NewDriver returns a Driver. maxIterations below one is treated as one.
func NewDriver(capturer *Capturer, maxIterations int, settleTime time.Duration, logger *zap.Logger) *Driver {
	if maxIterations < 1 {
		maxIterations = 1
	}
	return &Driver{
		capturer:      capturer,
		logger:        logger.Named("driver"),
		maxIterations: maxIterations,
		settleTime:    settleTime,
	}
}

// ScrollIntoView brings the element matching selector into view and returns
// every delta it applied, in order. It stops early when the computation asks
// for nothing or the page refuses to move further.
func (d *Driver) ScrollIntoView(ctx context.Context, selector, boundarySelector string, opts scroll.Options) ([]schemas.ScrollDelta, error) {
	var applied []schemas.ScrollDelta

	for i := 0; i < d.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return applied, err
		}

		doc, err := d.capturer.Snapshot(ctx, selector, boundarySelector)
		if err != nil {
			return applied, err
		}
		result, err := doc.Compute(opts)
		if err != nil {
			return applied, fmt.Errorf("failed to compute scroll for %q: %w", selector, err)
		}

		delta := snapshot.ToDelta(result)
		if !delta.Scrolled || (delta.Top == 0 && delta.Left == 0) {
			d.logger.Debug("Target in place.", zap.String("selector", selector), zap.Int("iterations", i))
			return applied, nil
		}

		moved, err := d.capturer.Apply(ctx, delta)
		if err != nil {
			return applied, err
		}
		applied = append(applied, delta)

		if !moved.Moved() {
			// The page is at its scroll limit; further attempts would repeat the same delta.
			d.logger.Debug("Delta did not move the page.",
				zap.String("selector", selector),
				zap.Float64("top", delta.Top),
				zap.Float64("left", delta.Left),
			)
			return applied, nil
		}

		if d.settleTime > 0 {
			select {
			case <-ctx.Done():
				return applied, ctx.Err()
			case <-time.After(d.settleTime):
			}
		}
	}

	d.logger.Warn("Scroll loop hit its iteration limit.",
		zap.String("selector", selector),
		zap.Int("max_iterations", d.maxIterations),
	)
	return applied, fmt.Errorf("%w for %q after %d iterations", ErrNotSettled, selector, d.maxIterations)
}
