// Package probe locates the registration site's login form inside the page
// and fills or submits it.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/xerrors"
	"github.com/garrettladley/sugang/internal/xslog"
)

// Evaluator runs a JavaScript expression in the page and decodes its
// JSON-serialisable result into res.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, res any) error
}

// Retry is the caller-side policy around Prefill.
type Retry struct {
	ReadyInterval time.Duration
	ReadyAttempts int
	FillInterval  time.Duration
	FillAttempts  int
}

func DefaultRetry() Retry {
	return Retry{
		ReadyInterval: 300 * time.Millisecond,
		ReadyAttempts: 40,
		FillInterval:  250 * time.Millisecond,
		FillAttempts:  40,
	}
}

type Prober struct {
	eval    Evaluator
	matcher Matcher
	retry   Retry
}

type Option func(*Prober)

func WithMatcher(m Matcher) Option {
	return func(p *Prober) { p.matcher = m }
}

func WithRetry(r Retry) Option {
	return func(p *Prober) { p.retry = r }
}

func New(eval Evaluator, opts ...Option) *Prober {
	p := &Prober{
		eval:    eval,
		matcher: DefaultMatcher(),
		retry:   DefaultRetry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Prober) Matcher() Matcher { return p.matcher }

// Survey reports every scope in search order: the Main frame, the other
// frames in document order, then the top document.
func (p *Prober) Survey(ctx context.Context) ([]ScopeReport, error) {
	var reports []ScopeReport
	if err := p.call(ctx, surveyScript, p.matcher, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

type fillArgs struct {
	MainFrame        string `json:"mainFrame"`
	Scope            string `json:"scope"`
	UsernameSelector string `json:"usernameSelector"`
	PasswordSelector string `json:"passwordSelector"`
	Username         string `json:"username"`
	Password         string `json:"password"`
}

// Prefill fills both login fields in the first scope that has them. It
// reports false, with a nil error, when no scope does.
func (p *Prober) Prefill(ctx context.Context, creds credential.Credentials) (bool, error) {
	reports, err := p.Survey(ctx)
	if err != nil {
		return false, err
	}

	scope, ok := Resolve(reports)
	if !ok {
		xslog.FromContext(ctx).DebugContext(ctx, "login fields not found",
			xslog.Count(len(reports)),
			surveyAttr(reports))
		return false, nil
	}

	xslog.FromContext(ctx).DebugContext(ctx, "login fields found", xslog.Scope(scope.Scope))

	var filled bool
	err = p.call(ctx, fillScript, fillArgs{
		MainFrame:        p.matcher.MainFrame,
		Scope:            scope.Scope,
		UsernameSelector: scope.Username,
		PasswordSelector: scope.Password,
		Username:         creds.Username,
		Password:         creds.Password,
	}, &filled)
	if err != nil {
		return false, err
	}
	return filled, nil
}

// Click presses the login button, Main frame first, falling back to
// submitting the button's form.
func (p *Prober) Click(ctx context.Context) (bool, error) {
	var clicked bool
	if err := p.call(ctx, clickScript, p.matcher, &clicked); err != nil {
		return false, err
	}
	return clicked, nil
}

// Ready reports whether the Main frame has loaded or the top document
// already shows login fields.
func (p *Prober) Ready(ctx context.Context) (bool, error) {
	var ready bool
	if err := p.call(ctx, readyScript, p.matcher, &ready); err != nil {
		return false, err
	}
	return ready, nil
}

// WaitAndPrefill waits for the page to become ready, then retries Prefill
// until it succeeds or the attempts run out. Failures are logged only.
func (p *Prober) WaitAndPrefill(ctx context.Context, creds credential.Credentials) bool {
	logger := xslog.FromContext(ctx)

	if !p.waitReady(ctx) {
		logger.WarnContext(ctx, "login page not ready", xslog.Attempt(p.retry.ReadyAttempts, p.retry.ReadyAttempts))
		return false
	}

	for attempt := 1; attempt <= p.retry.FillAttempts; attempt++ {
		ok, err := p.Prefill(ctx, creds)
		if err != nil {
			logger.DebugContext(ctx, "prefill attempt failed",
				xslog.Attempt(attempt, p.retry.FillAttempts),
				xslog.Error(err))
		}
		if ok {
			logger.InfoContext(ctx, "prefilled login form", xslog.Attempt(attempt, p.retry.FillAttempts))
			return true
		}
		if attempt < p.retry.FillAttempts && !sleep(ctx, p.retry.FillInterval) {
			return false
		}
	}

	xerrors.Log(ctx, "prefill gave up", xerrors.ProbeMiss(
		xerrors.WithMessage(fmt.Sprintf("login fields not found after %d attempts", p.retry.FillAttempts))))
	return false
}

func (p *Prober) waitReady(ctx context.Context) bool {
	for attempt := 1; attempt <= p.retry.ReadyAttempts; attempt++ {
		ready, err := p.Ready(ctx)
		if err == nil && ready {
			return true
		}
		if attempt < p.retry.ReadyAttempts && !sleep(ctx, p.retry.ReadyInterval) {
			return false
		}
	}
	return false
}

func (p *Prober) call(ctx context.Context, script string, arg any, res any) error {
	b, err := go_json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("failed to marshal script argument: %w", err)
	}
	if err := p.eval.Evaluate(ctx, script+"("+string(b)+")", res); err != nil {
		return xerrors.Injection(xerrors.WithCause(err))
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func surveyAttr(reports []ScopeReport) slog.Attr {
	attrs := make([]any, 0, len(reports))
	for _, r := range reports {
		attrs = append(attrs, slog.String(r.Scope, r.Access().String()))
	}
	return slog.Group("scopes", attrs...)
}
