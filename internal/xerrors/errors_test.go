package xerrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/garrettladley/sugang/internal/xslog"
)

func TestErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("context deadline exceeded")
	err := NetworkTimeout(WithMessage("site HEAD"), WithCause(cause))

	if got, want := err.Error(), "site HEAD: context deadline exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "direct", err: ProbeMiss(), want: KindProbeMiss},
		{name: "wrapped", err: fmt.Errorf("prefill: %w", Injection()), want: KindInjection},
		{name: "foreign", err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsMatchesKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("scope: %w", ProbeMiss(WithMessage("no password field")))
	if !errors.Is(err, ProbeMiss()) {
		t.Error("errors.Is(err, ProbeMiss()) = false, want true")
	}
	if errors.Is(err, Injection()) {
		t.Error("errors.Is(err, Injection()) = true, want false")
	}
}

func TestLogLevelByKind(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := xslog.WithLogger(context.Background(), logger)

	Log(ctx, "prefill", ProbeMiss())
	Log(ctx, "inject", Injection())
	Log(ctx, "ignored", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records, want 2: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"WARN"`) {
		t.Errorf("probe miss logged as %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"ERROR"`) {
		t.Errorf("injection logged as %s", lines[1])
	}
}
