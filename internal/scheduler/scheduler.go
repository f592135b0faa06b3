// Package scheduler arms the login chain around each half-hour boundary.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/xcontext"
	"github.com/garrettladley/sugang/internal/xerrors"
	"github.com/garrettladley/sugang/internal/xslog"
	"github.com/garrettladley/sugang/internal/xsync"
)

const (
	ClickerLead  = 90 * time.Second
	PrefillLead  = 1200 * time.Millisecond
	PollInterval = 5 * time.Millisecond
	ClickTimeout = 120 * time.Second
)

type Prober interface {
	WaitAndPrefill(ctx context.Context, creds credential.Credentials) bool
	Click(ctx context.Context) (bool, error)
}

// Scheduler owns at most one chain. Schedule replaces it; Cancel stops it.
type Scheduler struct {
	base    context.Context
	clock   clock.Clock
	store   storage.CredentialStore
	history storage.AttemptRecorder
	prober  Prober

	mu    sync.Mutex
	chain *chain
}

type Option func(*Scheduler)

func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithHistory records every clicker run.
func WithHistory(h storage.AttemptRecorder) Option {
	return func(s *Scheduler) { s.history = h }
}

// New returns a Scheduler whose chains live until ctx is done.
func New(ctx context.Context, store storage.CredentialStore, prober Prober, opts ...Option) *Scheduler {
	s := &Scheduler{
		base:   ctx,
		clock:  clock.Real{},
		store:  store,
		prober: prober,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule cancels any running chain and, when creds.AutoLogin is set,
// arms a new one for the next boundary. It reports whether a chain is armed.
func (s *Scheduler) Schedule(creds credential.Credentials) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chain != nil {
		s.chain.stop()
		s.chain = nil
	}

	logger := xslog.FromContext(s.base)
	if !creds.AutoLogin {
		logger.InfoContext(s.base, "auto login disabled, scheduler not started")
		return false
	}

	c := newChain(s.base)
	s.chain = c
	target := clock.NextBoundary(s.clock.Now())
	s.arm(c, target)

	logger.InfoContext(c.ctx, "scheduled auto login", xslog.Target(target))
	return true
}

func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chain == nil {
		return
	}
	s.chain.stop()
	xslog.FromContext(s.chain.ctx).InfoContext(s.chain.ctx, "cancelled auto login")
	s.chain = nil
}

// Active returns the running chain's ID and its next target.
func (s *Scheduler) Active() (uuid.UUID, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chain == nil {
		return uuid.Nil, time.Time{}, false
	}
	return s.chain.id, s.chain.nextTarget(), true
}

func (s *Scheduler) arm(c *chain, target time.Time) {
	now := s.clock.Now()
	c.reset(target)

	clickerDelay := clock.Until(now, target, ClickerLead)
	prefillDelay := clock.Until(now, target, PrefillLead)
	boundaryDelay := clock.Until(now, target, 0)

	xslog.FromContext(c.ctx).DebugContext(c.ctx, "armed cycle",
		xslog.Target(target),
		slog.Group("delays",
			slog.Duration("clicker", clickerDelay),
			slog.Duration("prefill", prefillDelay),
			slog.Duration("boundary", boundaryDelay)))

	c.after(s.clock, clickerDelay, func() { s.startClicker(c, target) })
	c.after(s.clock, prefillDelay, func() { s.refreshPrefill(c) })
	c.after(s.clock, boundaryDelay, func() {
		// A timer may fire a little before the wall clock reaches target.
		from := s.clock.Now()
		if from.Before(target) {
			from = target
		}
		next := clock.NextBoundary(from)
		xslog.FromContext(c.ctx).InfoContext(c.ctx, "re-arming auto login", xslog.Target(next))
		s.arm(c, next)
	})
}

func (s *Scheduler) startClicker(c *chain, target time.Time) {
	if _, ok := s.credentials(c.ctx); !ok {
		return
	}
	xslog.FromContext(c.ctx).InfoContext(c.ctx, "starting timed clicker", xslog.Target(target))
	NewClicker(s.clock, s.prober.Click).Start(c.ctx, target, func(r Result) { s.record(c.ctx, r) })
}

func (s *Scheduler) refreshPrefill(c *chain) {
	creds, ok := s.credentials(c.ctx)
	if !ok {
		return
	}
	xslog.FromContext(c.ctx).InfoContext(c.ctx, "refreshing prefill before boundary")
	s.prober.WaitAndPrefill(c.ctx, creds)
}

// credentials reads the store at firing time. Absence skips the step.
func (s *Scheduler) credentials(ctx context.Context) (credential.Credentials, bool) {
	creds, err := s.store.Get(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		xslog.FromContext(ctx).DebugContext(ctx, "no saved credentials, skipping")
		return credential.Credentials{}, false
	}
	if err != nil {
		xerrors.Log(ctx, "failed to read credentials", err)
		return credential.Credentials{}, false
	}
	return creds, true
}

func (s *Scheduler) record(ctx context.Context, r Result) {
	logger := xslog.FromContext(ctx)
	attrs := []any{xslog.Target(r.Target), slog.String("reason", r.Reason)}

	switch r.Reason {
	case ReasonClicked:
		logger.InfoContext(ctx, "login clicked", append(attrs, slog.Time("fired_at", r.FiredAt))...)
	case ReasonNoButton:
		xerrors.Log(ctx, "login button not found", xerrors.ProbeMiss(), attrs...)
	case ReasonError:
		xerrors.Log(ctx, "login click failed", r.Err, attrs...)
	case ReasonTimeout:
		logger.WarnContext(ctx, "clicker stopped without reaching the window", attrs...)
	default:
		logger.DebugContext(ctx, "clicker cancelled", attrs...)
	}

	if s.history == nil || r.Reason == ReasonCancelled {
		return
	}
	id, _ := xcontext.GetChainID(ctx)
	err := s.history.RecordAttempt(context.WithoutCancel(ctx), storage.Attempt{
		ChainID: id,
		Target:  r.Target,
		FiredAt: r.FiredAt,
		Clicked: r.Clicked,
		Reason:  r.Reason,
	})
	if err != nil {
		xerrors.Log(ctx, "failed to record attempt", err)
	}
}

// chain is the set of timers armed by one Schedule call.
type chain struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	target time.Time
	timers []clock.Timer
}

func newChain(parent context.Context) *chain {
	id := uuid.New()
	ctx := xcontext.SetChainID(parent, id)
	ctx = xslog.WithChain(ctx, id.String())
	ctx, cancel := context.WithCancel(ctx)
	return &chain{id: id, ctx: ctx, cancel: cancel}
}

// reset forgets the previous cycle's timers, which have all fired by the
// time the boundary re-arms.
func (c *chain) reset(target time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.timers = c.timers[:0]
}

func (c *chain) nextTarget() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *chain) after(clk clock.Clock, d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx.Err() != nil {
		return
	}
	t := clk.AfterFunc(d, xsync.Guard(c.ctx, "scheduler timer panicked", func() {
		if c.ctx.Err() != nil {
			return
		}
		f()
	}))
	c.timers = append(c.timers, t)
}

func (c *chain) stop() {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}
