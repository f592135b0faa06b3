package xsync

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/garrettladley/sugang/internal/xslog"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestGuardRecoversPanic(t *testing.T) {
	t.Parallel()

	var out syncBuffer
	ctx := xslog.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&out, nil)))

	Guard(ctx, "timer callback panicked", func() { panic("boom") })()

	if got := out.String(); !strings.Contains(got, "timer callback panicked") || !strings.Contains(got, "boom") {
		t.Errorf("log output = %q, want panic message and value", got)
	}
}
