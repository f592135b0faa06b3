// Package browser drives a Chrome tab over the DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/garrettladley/sugang/internal/xslog"
)

const defaultEvalTimeout = 5 * time.Second

type Options struct {
	ChromePath string
	Headless   bool
	Width      int
	Height     int
	// ProfileDir keeps cookies and site storage between launches.
	ProfileDir string
}

// BindingHandler receives the string a page passed to a window binding.
type BindingHandler func(ctx context.Context, payload string)

// Session is one Chrome window with a single tab.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger
	evalTimeout time.Duration

	loads chan struct{}

	mu       sync.RWMutex
	bindings map[string]BindingHandler
}

// New launches Chrome and enables the page and runtime domains. The
// session ends when ctx is cancelled or the window is closed.
func New(ctx context.Context, opts Options) (*Session, error) {
	logger := xslog.FromContext(ctx)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}),
	)

	s := newSession(tabCtx, func() {
		tabCancel()
		allocCancel()
	}, logger)
	chromedp.ListenTarget(tabCtx, s.handle)

	if err := chromedp.Run(tabCtx, page.Enable(), runtime.Enable()); err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return s, nil
}

func newSession(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger) *Session {
	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
		evalTimeout: defaultEvalTimeout,
		loads:       make(chan struct{}, 1),
		bindings:    make(map[string]BindingHandler),
	}
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	out := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		// the login form lives in a frame the top page must be able to reach
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("disable-site-isolation-trials", true),
		chromedp.Flag("disable-features", "IsolateOrigins,site-per-process"),
	)
	if opts.Width > 0 && opts.Height > 0 {
		out = append(out, chromedp.WindowSize(opts.Width, opts.Height))
	}
	if opts.ChromePath != "" {
		out = append(out, chromedp.ExecPath(opts.ChromePath))
	}
	if opts.ProfileDir != "" {
		out = append(out, chromedp.UserDataDir(opts.ProfileDir))
	}
	return out
}

// Done is closed when the browser goes away.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Loads signals each top-level load event. Signals coalesce while unread.
func (s *Session) Loads() <-chan struct{} { return s.loads }

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, 30*time.Second, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Evaluate runs expression in the top document and decodes the result into
// res. A script that returns undefined must be given a nil res.
func (s *Session) Evaluate(ctx context.Context, expression string, res any) error {
	return s.run(ctx, s.evalTimeout, chromedp.Evaluate(expression, res))
}

// Bind exposes window[name] to every document the tab loads. Calls from the
// page are delivered to h on their own goroutine.
func (s *Session) Bind(ctx context.Context, name string, h BindingHandler) error {
	s.mu.Lock()
	s.bindings[name] = h
	s.mu.Unlock()

	if err := s.run(ctx, s.evalTimeout, runtime.AddBinding(name)); err != nil {
		return fmt.Errorf("failed to add binding %s: %w", name, err)
	}
	return nil
}

func (s *Session) Close() error {
	s.cancel()
	return nil
}

// run executes actions on the tab, bounded by timeout and by ctx.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return errors.Join(ctx.Err(), err)
	}
	return err
}

func (s *Session) handle(ev any) {
	switch ev := ev.(type) {
	case *page.EventLoadEventFired:
		select {
		case s.loads <- struct{}{}:
		default:
		}
	case *runtime.EventBindingCalled:
		s.mu.RLock()
		h, ok := s.bindings[ev.Name]
		s.mu.RUnlock()
		if !ok {
			return
		}
		go h(xslog.WithLogger(s.ctx, s.logger), ev.Payload)
	case *runtime.EventConsoleAPICalled:
		if ev.Type != runtime.APITypeError && ev.Type != runtime.APITypeWarning {
			return
		}
		args := make([]string, len(ev.Args))
		for i, arg := range ev.Args {
			args[i] = string(arg.Value)
		}
		s.logger.Debug("page console", slog.String("type", ev.Type.String()), slog.String("text", strings.Join(args, " ")))
	case *runtime.EventExceptionThrown:
		s.logger.Debug("page exception", slog.String("text", ev.ExceptionDetails.Text))
	}
}
