package browser

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
)

func TestHandleLoadCoalesces(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := newSession(ctx, cancel, slog.Default())
	defer func() { _ = s.Close() }()

	s.handle(&page.EventLoadEventFired{})
	s.handle(&page.EventLoadEventFired{})

	select {
	case <-s.Loads():
	default:
		t.Fatal("no load signal")
	}
	select {
	case <-s.Loads():
		t.Fatal("second load signal was not coalesced")
	default:
	}
}

func TestHandleBindingDispatch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := newSession(ctx, cancel, slog.Default())
	defer func() { _ = s.Close() }()

	got := make(chan string, 1)
	s.bindings["sugangSave"] = func(_ context.Context, payload string) { got <- payload }

	s.handle(&runtime.EventBindingCalled{Name: "unknown", Payload: "ignored"})
	s.handle(&runtime.EventBindingCalled{Name: "sugangSave", Payload: `{"username":"u"}`})

	select {
	case p := <-got:
		if p != `{"username":"u"}` {
			t.Errorf("payload = %q, want %q", p, `{"username":"u"}`)
		}
	case <-time.After(time.Second):
		t.Fatal("binding handler not called")
	}
}

func TestAllocatorOptions(t *testing.T) {
	t.Parallel()

	base := len(allocatorOptions(Options{}))
	full := len(allocatorOptions(Options{ChromePath: "/usr/bin/chromium", Width: 1600, Height: 1000, ProfileDir: t.TempDir()}))
	if full != base+3 {
		t.Errorf("allocatorOptions() len = %d, want %d", full, base+3)
	}
}
