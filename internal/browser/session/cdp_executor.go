// internal/browser/session/cdp_executor.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scroll-align/internal/browser/capture"
)

// evaluateTimeout bounds a single script evaluation.
const evaluateTimeout = 20 * time.Second

// cdpExecutor implements capture.Executor with chromedp. It bridges the
// browser-agnostic capture logic and the concrete CDP session.
type cdpExecutor struct {
	ctx            context.Context // the session's tab context
	logger         *zap.Logger
	runActionsFunc func(ctx context.Context, actions ...chromedp.Action) error // Session.RunActions
	timeout        time.Duration                                               // zero means evaluateTimeout
}

var _ capture.Executor = (*cdpExecutor)(nil)

// Evaluate runs script in the page and stores its JSON result in res.
// Promises are awaited and the value is returned by value.
func (e *cdpExecutor) Evaluate(ctx context.Context, script string, res *json.RawMessage) error {
	timeout := e.timeout
	if timeout <= 0 {
		timeout = evaluateTimeout
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := e.runActionsFunc(opCtx,
		chromedp.Evaluate(script, res, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithReturnByValue(true).WithAwaitPromise(true).WithSilent(true)
		}),
	)
	if err == nil {
		return nil
	}

	if opCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		e.logger.Debug("Script evaluation timed out.", zap.Duration("timeout", timeout))
		return fmt.Errorf("timeout evaluating script after %v: %w", timeout, opCtx.Err())
	}
	if ctx.Err() != nil || e.ctx.Err() != nil {
		return fmt.Errorf("context error evaluating script: %w", err)
	}
	return fmt.Errorf("failed script evaluation: %w", err)
}
