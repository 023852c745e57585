// internal/browser/session/session.go

// Package session owns a live Chrome tab driven over the DevTools protocol.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scroll-align/internal/browser/capture"
	"github.com/xkilldash9x/scroll-align/internal/config"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("browser session is closed")

const (
	defaultNavigationTimeout = 90 * time.Second
	stabilizeTimeout         = 30 * time.Second
)

// Session is a single browser tab with its own allocator.
type Session struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
	cfg    config.Interface

	executor *cdpExecutor

	mu       sync.Mutex
	isClosed bool
}

// New starts a browser according to cfg and opens a tab. The session lives
// until Close is called or parentCtx is canceled.
func New(parentCtx context.Context, cfg config.Interface, logger *zap.Logger) (*Session, error) {
	sessionID := uuid.New().String()
	log := logger.With(zap.String("session_id", sessionID))

	allocCtx, allocCancel := chromedp.NewExecAllocator(parentCtx, getBrowserExecOptions(cfg)...)

	var ctxOpts []chromedp.ContextOption
	if cfg.Browser().Debug {
		ctxOpts = append(ctxOpts, chromedp.WithDebugf(log.Sugar().Debugf))
	}
	ctxOpts = append(ctxOpts, chromedp.WithErrorf(log.Sugar().Errorf))
	tabCtx, tabCancel := chromedp.NewContext(allocCtx, ctxOpts...)

	cancel := func() {
		tabCancel()
		allocCancel()
	}

	// The first Run launches the browser and attaches to the tab.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	s := &Session{
		id:     sessionID,
		ctx:    tabCtx,
		cancel: cancel,
		logger: log,
		cfg:    cfg,
	}
	s.executor = &cdpExecutor{
		ctx:            tabCtx,
		logger:         log.Named("cdp_executor"),
		runActionsFunc: s.RunActions,
	}

	log.Debug("Browser session started.")
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Executor returns the script executor bound to this tab.
func (s *Session) Executor() capture.Executor {
	return s.executor
}

// Navigate loads url and waits for the page to settle.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating to URL", zap.String("url", url))

	opCtx, opCancel := CombineContext(s.ctx, ctx)
	defer opCancel()

	navTimeout := s.cfg.Network().NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = defaultNavigationTimeout
	}
	navCtx, navCancel := context.WithTimeout(opCtx, navTimeout)
	defer navCancel()

	if err := s.run(navCtx, chromedp.Navigate(url)); err != nil {
		if errors.Is(err, ErrSessionClosed) {
			return err
		}
		if navCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("navigation timed out after %s: %w", navTimeout, err)
		}
		if opCtx.Err() != nil {
			return fmt.Errorf("navigation canceled: %w", context.Cause(opCtx))
		}
		return fmt.Errorf("navigation failed: %w", err)
	}

	// Stabilize on the operation context, not the navigation one.
	if err := s.stabilize(opCtx, s.cfg.Network().PostLoadWait); err != nil {
		return err
	}
	return nil
}

// stabilize waits for the body to be ready and then for the quiet period,
// giving late layout shifts a chance to land before geometry is read.
func (s *Session) stabilize(ctx context.Context, quietPeriod time.Duration) error {
	stabCtx, cancel := context.WithTimeout(ctx, stabilizeTimeout)
	defer cancel()

	if err := s.run(stabCtx, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		s.logger.Debug("WaitReady failed during stabilization.", zap.Error(err))
	}
	if quietPeriod > 0 {
		if err := s.run(ctx, chromedp.Sleep(quietPeriod)); err != nil {
			return err
		}
	}
	return nil
}

// RunActions executes chromedp actions bounded by both the session lifetime
// and ctx.
func (s *Session) RunActions(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := CombineContext(s.ctx, ctx)
	defer cancel()
	return s.run(runCtx, actions...)
}

func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	s.mu.Lock()
	closed := s.isClosed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	return chromedp.Run(ctx, actions...)
}

// Close shuts the tab and the browser down. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.isClosed {
		s.mu.Unlock()
		return nil
	}
	s.isClosed = true
	s.mu.Unlock()

	s.logger.Debug("Closing browser session.")

	// Ask Chrome to exit cleanly first; the cancel below is the hard stop.
	done := make(chan error, 1)
	go func() { done <- chromedp.Cancel(s.ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	s.cancel()

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to close browser session: %w", err)
	}
	return nil
}
