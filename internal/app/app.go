// Package app runs one browser session against the registration site:
// it prefills and schedules the login, and keeps sugang's panels on the page.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/sugang/internal/browser"
	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/overlay"
	"github.com/garrettladley/sugang/internal/service/credentials"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/timesource"
	"github.com/garrettladley/sugang/internal/update"
	"github.com/garrettladley/sugang/internal/xerrors"
	"github.com/garrettladley/sugang/internal/xslog"
	"github.com/garrettladley/sugang/internal/xsync"
)

const (
	DefaultSetupDelay   = 500 * time.Millisecond
	DefaultReadoutDelay = 2 * time.Second
)

type Page interface {
	Navigate(ctx context.Context, url string) error
	Bind(ctx context.Context, name string, h browser.BindingHandler) error
	Loads() <-chan struct{}
	Done() <-chan struct{}
}

type Prober interface {
	WaitAndPrefill(ctx context.Context, creds credential.Credentials) bool
}

type Scheduler interface {
	Schedule(creds credential.Credentials) bool
}

type Overlay interface {
	ShowReadout(ctx context.Context, offset time.Duration) (bool, error)
	Watch(ctx context.Context, offset func(context.Context) time.Duration)
	ShowSettings(ctx context.Context, creds *credential.Credentials) error
	Answer(ctx context.Context, r overlay.Result) (bool, error)
	ShowUpdate(ctx context.Context, n overlay.Notice) error
}

type UpdateChecker interface {
	Check(ctx context.Context, current string) (update.Info, bool, error)
}

type Deps struct {
	Page        Page
	Credentials credentials.Service
	Prober      Prober
	Scheduler   Scheduler
	Overlay     Overlay
	Time        timesource.Source
}

type App struct {
	siteURL string
	Deps

	setupDelay   time.Duration
	readoutDelay time.Duration

	updates UpdateChecker
	version string

	watchOnce  sync.Once
	updateOnce sync.Once
}

type Option func(*App)

func WithSetupDelay(d time.Duration) Option {
	return func(a *App) { a.setupDelay = d }
}

func WithReadoutDelay(d time.Duration) Option {
	return func(a *App) { a.readoutDelay = d }
}

// WithUpdates checks for a release newer than current after the first load.
func WithUpdates(c UpdateChecker, current string) Option {
	return func(a *App) {
		a.updates = c
		a.version = current
	}
}

func New(siteURL string, deps Deps, opts ...Option) *App {
	a := &App{
		siteURL:      siteURL,
		Deps:         deps,
		setupDelay:   DefaultSetupDelay,
		readoutDelay: DefaultReadoutDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run binds the settings handlers, opens the site and reacts to page loads
// until ctx is done or the browser closes.
func (a *App) Run(ctx context.Context) error {
	logger := xslog.FromContext(ctx)

	if err := a.Page.Bind(ctx, overlay.SaveBinding, a.handleSave); err != nil {
		return err
	}
	if err := a.Page.Bind(ctx, overlay.ClearBinding, a.handleClear); err != nil {
		return err
	}
	if err := a.Page.Bind(ctx, overlay.SettingsBinding, a.handleOpenSettings); err != nil {
		return err
	}
	if err := a.Page.Navigate(ctx, a.siteURL); err != nil {
		return err
	}
	logger.InfoContext(ctx, "opened registration site", xslog.URL(a.siteURL))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.Page.Done():
			logger.InfoContext(ctx, "browser closed")
			return nil
		case <-a.Page.Loads():
			a.onLoad(ctx)
		}
	}
}

func (a *App) onLoad(ctx context.Context) {
	xslog.FromContext(ctx).DebugContext(ctx, "page loaded")

	a.after(ctx, a.setupDelay, "page setup panicked", func() { a.setup(ctx) })
	a.after(ctx, a.readoutDelay, "readout injection panicked", func() {
		a.showReadout(ctx)
		a.watchOnce.Do(func() {
			xsync.Go(ctx, "readout watchdog panicked", func() { a.Overlay.Watch(ctx, a.offset) })
		})
	})
	if a.updates != nil {
		a.updateOnce.Do(func() {
			xsync.Go(ctx, "update check panicked", func() { a.checkUpdate(ctx) })
		})
	}
}

// setup prefills the form, schedules auto login, or asks for credentials
// when none are saved.
func (a *App) setup(ctx context.Context) {
	creds, err := a.Credentials.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		if err := a.Overlay.ShowSettings(ctx, nil); err != nil {
			xerrors.Log(ctx, "failed to show settings", err)
		}
		return
	}
	if err != nil {
		xerrors.Log(ctx, "failed to load credentials", err)
		return
	}

	a.Scheduler.Schedule(creds)
	a.Prober.WaitAndPrefill(ctx, creds)
}

func (a *App) showReadout(ctx context.Context) {
	if _, err := a.Overlay.ShowReadout(ctx, a.offset(ctx)); err != nil {
		xerrors.Log(ctx, "failed to show server time readout", err)
	}
}

func (a *App) offset(ctx context.Context) time.Duration {
	return a.Time.ServerTime(ctx).Offset()
}

func (a *App) checkUpdate(ctx context.Context) {
	info, newer, err := a.updates.Check(ctx, a.version)
	if err != nil {
		xslog.FromContext(ctx).DebugContext(ctx, "update check failed", xslog.Error(err))
		return
	}
	if !newer {
		return
	}
	err = a.Overlay.ShowUpdate(ctx, overlay.Notice{
		Current: info.Current,
		Latest:  info.Latest,
		Label:   info.Asset.Label,
		URL:     info.Asset.URL,
	})
	if err != nil {
		xerrors.Log(ctx, "failed to show update notice", err)
	}
}

// ShowSettings opens the settings modal with the saved credentials.
func (a *App) ShowSettings(ctx context.Context) error {
	creds, err := a.Credentials.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return a.Overlay.ShowSettings(ctx, nil)
	case err != nil:
		return err
	default:
		return a.Overlay.ShowSettings(ctx, &creds)
	}
}

func (a *App) handleOpenSettings(ctx context.Context, _ string) {
	if err := a.ShowSettings(ctx); err != nil {
		xerrors.Log(ctx, "failed to show settings", err)
	}
}

func (a *App) handleSave(ctx context.Context, payload string) {
	var p credential.Payload
	if err := go_json.Unmarshal([]byte(payload), &p); err != nil {
		xerrors.Log(ctx, "invalid settings payload", xerrors.Validation(nil, xerrors.WithCause(err)))
		a.answer(ctx, overlay.Failed(err))
		return
	}

	if _, err := a.Credentials.Save(ctx, p); err != nil {
		xerrors.Log(ctx, "failed to save credentials", err)
		a.answer(ctx, overlay.Failed(err))
		return
	}
	a.answer(ctx, overlay.Saved())
}

func (a *App) handleClear(ctx context.Context, _ string) {
	if err := a.Credentials.Clear(ctx); err != nil {
		xerrors.Log(ctx, "failed to clear credentials", err)
		a.answer(ctx, overlay.Failed(err))
		return
	}
	a.answer(ctx, overlay.Cleared())
}

func (a *App) answer(ctx context.Context, r overlay.Result) {
	if _, err := a.Overlay.Answer(ctx, r); err != nil {
		xerrors.Log(ctx, "failed to answer settings modal", err)
	}
}

// after runs f on its own goroutine once d has passed, unless ctx ends first.
// The cancellation hook is released when the timer fires.
func (a *App) after(ctx context.Context, d time.Duration, msg string, f func()) {
	release := make(chan func() bool, 1)
	t := time.AfterFunc(d, xsync.Guard(ctx, msg, func() {
		(<-release)()
		if ctx.Err() != nil {
			return
		}
		f()
	}))
	release <- context.AfterFunc(ctx, func() { t.Stop() })
}
