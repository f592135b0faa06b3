// Package overlay injects the floating panels sugang draws on top of the
// registration site.
package overlay

import (
	"context"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/xerrors"
	"github.com/garrettladley/sugang/internal/xslog"
)

const (
	ReadoutID  = "server-time-modal"
	SettingsID = "login-modal-overlay"
	UpdateID   = "update-modal-overlay"

	// SaveBinding and ClearBinding are the window functions the settings
	// modal calls. Both must be bound before the modal is shown.
	SaveBinding  = "sugangSaveCredentials"
	ClearBinding = "sugangClearCredentials"
	// SettingsBinding is called when the readout is clicked.
	SettingsBinding = "sugangOpenSettings"

	ReadoutInterval = 50 * time.Millisecond
	WatchInterval   = 5 * time.Second
	closeDelay      = time.Second
)

type Evaluator interface {
	Evaluate(ctx context.Context, expression string, res any) error
}

type Injector struct {
	eval          Evaluator
	watchInterval time.Duration
}

type Option func(*Injector)

func WithWatchInterval(d time.Duration) Option {
	return func(i *Injector) { i.watchInterval = d }
}

func New(eval Evaluator, opts ...Option) *Injector {
	i := &Injector{
		eval:          eval,
		watchInterval: WatchInterval,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type readoutArgs struct {
	ID              string `json:"id"`
	OffsetMs        int64  `json:"offsetMs"`
	IntervalMs      int64  `json:"intervalMs"`
	SettingsBinding string `json:"settingsBinding"`
}

// ShowReadout draws the server-time panel, or only updates its offset when
// the panel is already there. It reports whether the panel was created.
func (i *Injector) ShowReadout(ctx context.Context, offset time.Duration) (bool, error) {
	var created bool
	err := i.call(ctx, readoutScript, readoutArgs{
		ID:              ReadoutID,
		OffsetMs:        offset.Milliseconds(),
		IntervalMs:      ReadoutInterval.Milliseconds(),
		SettingsBinding: SettingsBinding,
	}, &created)
	return created, err
}

// Watch keeps the readout on the page until ctx is done, redrawing it
// whenever the site removes it. offset is asked for a fresh value each tick.
func (i *Injector) Watch(ctx context.Context, offset func(context.Context) time.Duration) {
	logger := xslog.FromContext(ctx)

	ticker := time.NewTicker(i.watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			created, err := i.ShowReadout(ctx, offset(ctx))
			if err != nil {
				xerrors.Log(ctx, "failed to refresh server time readout", err)
				continue
			}
			if created {
				logger.DebugContext(ctx, "server time readout reinjected")
			}
		}
	}
}

type settingsArgs struct {
	ID           string                  `json:"id"`
	Credentials  *credential.Credentials `json:"credentials"`
	SaveBinding  string                  `json:"saveBinding"`
	ClearBinding string                  `json:"clearBinding"`
	CloseDelayMs int64                   `json:"closeDelayMs"`
}

// ShowSettings opens the login settings modal, prefilled from creds when
// it is non-nil.
func (i *Injector) ShowSettings(ctx context.Context, creds *credential.Credentials) error {
	return i.call(ctx, settingsScript, settingsArgs{
		ID:           SettingsID,
		Credentials:  creds,
		SaveBinding:  SaveBinding,
		ClearBinding: ClearBinding,
		CloseDelayMs: closeDelay.Milliseconds(),
	}, nil)
}

// Result is the answer to a save or clear request from the settings modal.
type Result struct {
	OK      bool   `json:"ok"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Saved, Cleared and Failed are the messages the modal shows.
func Saved() Result   { return Result{OK: true, Message: "로그인 정보가 저장되었습니다!"} }
func Cleared() Result { return Result{OK: true, Message: "로그인 정보가 삭제되었습니다!"} }

func Failed(err error) Result {
	if e := xerrors.As(err); e != nil && e.Validation != nil {
		for _, field := range []string{"username", "password"} {
			if _, ok := e.Validation.Fields[field]; ok {
				return Result{Field: field, Message: fieldMessages[field]}
			}
		}
	}
	return Result{Field: "username", Message: "저장 중 오류가 발생했습니다."}
}

var fieldMessages = map[string]string{
	"username": "아이디를 입력해주세요.",
	"password": "비밀번호를 입력해주세요.",
}

// Answer delivers r to the open settings modal. It reports false when the
// modal was already closed.
func (i *Injector) Answer(ctx context.Context, r Result) (bool, error) {
	var delivered bool
	err := i.call(ctx, resultScript, r, &delivered)
	return delivered, err
}

// Notice describes an available update.
type Notice struct {
	Current string `json:"current"`
	Latest  string `json:"latest"`
	Label   string `json:"label"`
	URL     string `json:"url"`
}

type updateArgs struct {
	ID string `json:"id"`
	Notice
}

func (i *Injector) ShowUpdate(ctx context.Context, n Notice) error {
	return i.call(ctx, updateScript, updateArgs{ID: UpdateID, Notice: n}, nil)
}

func (i *Injector) call(ctx context.Context, script string, arg any, res any) error {
	b, err := go_json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("failed to marshal script argument: %w", err)
	}
	if res == nil {
		var ignored bool
		res = &ignored
	}
	if err := i.eval.Evaluate(ctx, script+"("+string(b)+")", res); err != nil {
		return xerrors.Injection(xerrors.WithCause(err))
	}
	return nil
}
