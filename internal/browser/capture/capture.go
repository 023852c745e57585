// internal/browser/capture/capture.go

// Package capture reads element geometry out of a live page into snapshots
// and applies computed scroll deltas back to it.
package capture

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scroll-align/api/schemas"
	"github.com/xkilldash9x/scroll-align/internal/snapshot"
)

// ErrElementNotFound is returned when the selector matches nothing.
var ErrElementNotFound = errors.New("element not found")

//go:embed capture.js
var captureScript string

// Executor runs a script in the page and returns its JSON-encoded result.
type Executor interface {
	Evaluate(ctx context.Context, script string, res *json.RawMessage) error
}

// Movement is how far the page actually scrolled after Apply.
type Movement struct {
	Top  float64 `json:"y"`
	Left float64 `json:"x"`
}

// Moved reports whether the page position changed.
func (m Movement) Moved() bool {
	return m.Top != 0 || m.Left != 0
}

// Capturer takes snapshots through an Executor.
type Capturer struct {
	exec   Executor
	logger *zap.Logger
	newID  func() string
}

// NewCapturer returns a Capturer bound to exec.
func NewCapturer(exec Executor, logger *zap.Logger) *Capturer {
	return &Capturer{
		exec:   exec,
		logger: logger.Named("capture"),
		newID:  func() string { return uuid.New().String() },
	}
}

// Snapshot records the element matching selector together with its
// ancestors and the page-level nodes. When boundarySelector is non-empty and
// matches, the snapshot also names that element as its boundary.
func (c *Capturer) Snapshot(ctx context.Context, selector, boundarySelector string) (*snapshot.Document, error) {
	script := fmt.Sprintf("(%s)(%s, %s)", strings.TrimSpace(captureScript), jsonEncode(selector), jsonEncode(boundarySelector))

	var res json.RawMessage
	if err := c.exec.Evaluate(ctx, script, &res); err != nil {
		return nil, fmt.Errorf("failed to capture geometry for %q: %w", selector, err)
	}
	if len(res) == 0 || string(res) == "null" {
		c.logger.Debug("Capture script returned null.", zap.String("selector", selector))
		return nil, fmt.Errorf("%w: %q", ErrElementNotFound, selector)
	}

	var s snapshot.Snapshot
	if err := jsoniter.Unmarshal(res, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot for %q: %w", selector, err)
	}
	s.ID = c.newID()

	doc, err := snapshot.New(s)
	if err != nil {
		return nil, fmt.Errorf("captured snapshot for %q is unusable: %w", selector, err)
	}
	c.logger.Debug("Snapshot captured.",
		zap.String("snapshot_id", s.ID),
		zap.String("selector", selector),
		zap.Int("nodes", len(s.Nodes)),
	)
	return doc, nil
}

// Apply scrolls the root viewport by delta and reports how far it actually
// moved. An empty delta is a no-op.
func (c *Capturer) Apply(ctx context.Context, delta schemas.ScrollDelta) (Movement, error) {
	if !delta.Scrolled {
		return Movement{}, nil
	}
	script := fmt.Sprintf(`(function (left, top) {
  const x = window.scrollX, y = window.scrollY;
  window.scrollBy({ left: left, top: top, behavior: 'instant' });
  return { x: window.scrollX - x, y: window.scrollY - y };
})(%s, %s)`, jsonEncode(delta.Left), jsonEncode(delta.Top))

	var res json.RawMessage
	if err := c.exec.Evaluate(ctx, script, &res); err != nil {
		return Movement{}, fmt.Errorf("failed to apply scroll delta: %w", err)
	}

	var moved Movement
	if len(res) > 0 && string(res) != "null" {
		if err := jsoniter.Unmarshal(res, &moved); err != nil {
			return Movement{}, fmt.Errorf("failed to unmarshal scroll movement: %w (payload: %s)", err, string(res))
		}
	}
	return moved, nil
}

// jsonEncode encodes a value for safe injection into a script.
func jsonEncode(v interface{}) string {
	b, err := jsoniter.Marshal(v)
	if err != nil {
		return `null`
	}
	return string(b)
}
