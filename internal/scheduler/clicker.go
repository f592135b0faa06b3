package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/xsync"
)

const (
	ReasonClicked   = "clicked"
	ReasonNoButton  = "button_not_found"
	ReasonError     = "click_failed"
	ReasonTimeout   = "timeout"
	ReasonCancelled = "cancelled"
)

// Result is the outcome of one clicker run.
type Result struct {
	Target  time.Time
	FiredAt time.Time
	Clicked bool
	Reason  string
	Err     error
}

// Clicker polls the clock and clicks once inside the pre-boundary window.
type Clicker struct {
	clock    clock.Clock
	click    func(ctx context.Context) (bool, error)
	interval time.Duration
	timeout  time.Duration
}

func NewClicker(c clock.Clock, click func(ctx context.Context) (bool, error)) *Clicker {
	return &Clicker{
		clock:    c,
		click:    click,
		interval: PollInterval,
		timeout:  ClickTimeout,
	}
}

// Start polls every interval. It clicks at most once, stops after the
// click or after the timeout, and reports exactly one Result to done.
func (k *Clicker) Start(ctx context.Context, target time.Time, done func(Result)) {
	start := k.clock.Now()

	var (
		mu      sync.Mutex
		timer   clock.Timer
		settled bool
	)
	finish := func(r Result) {
		mu.Lock()
		if settled {
			mu.Unlock()
			return
		}
		settled = true
		mu.Unlock()
		r.Target = target
		done(r)
	}

	stop := context.AfterFunc(ctx, func() {
		mu.Lock()
		t := timer
		mu.Unlock()
		if t != nil && t.Stop() {
			finish(Result{Reason: ReasonCancelled})
		}
	})

	var tick func()
	tick = func() {
		if ctx.Err() != nil {
			finish(Result{Reason: ReasonCancelled})
			return
		}

		now := k.clock.Now()
		if clock.InClickWindow(now) {
			stop()
			clicked, err := k.click(ctx)
			r := Result{FiredAt: now, Clicked: clicked, Err: err}
			switch {
			case err != nil:
				r.Reason = ReasonError
			case clicked:
				r.Reason = ReasonClicked
			default:
				r.Reason = ReasonNoButton
			}
			finish(r)
			return
		}
		if now.Sub(start) > k.timeout {
			stop()
			finish(Result{Reason: ReasonTimeout})
			return
		}

		mu.Lock()
		timer = k.clock.AfterFunc(k.interval, xsync.Guard(ctx, "clicker tick panicked", tick))
		mu.Unlock()
	}

	mu.Lock()
	timer = k.clock.AfterFunc(k.interval, xsync.Guard(ctx, "clicker tick panicked", tick))
	mu.Unlock()
}
