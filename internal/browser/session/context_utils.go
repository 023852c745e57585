// internal/browser/session/context_utils.go
package session

import (
	"context"
)

// CombineContext returns a context derived from ctx1 (the session context)
// that is also canceled when ctx2 (the operational context) is done. Values,
// including the chromedp target, come from ctx1 only.
//
// When ctx2 ends first, context.Cause on the result reports ctx2's cause, so
// an operational deadline can be told apart from a closed session.
func CombineContext(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancelCause(ctx1)
	stop := context.AfterFunc(ctx2, func() {
		cancel(context.Cause(ctx2))
	})
	return combined, func() {
		stop()
		cancel(context.Canceled)
	}
}
