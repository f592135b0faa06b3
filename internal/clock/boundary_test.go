package clock

import (
	"testing"
	"time"
)

func at(h, m, s, ms int) time.Time {
	return time.Date(2025, time.February, 10, h, m, s, ms*int(time.Millisecond), time.UTC)
}

func TestNextBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "first half", now: at(12, 17, 45, 0), want: at(12, 30, 0, 0)},
		{name: "second half", now: at(12, 31, 0, 0), want: at(13, 0, 0, 0)},
		{name: "just before half", now: at(12, 29, 59, 999), want: at(12, 30, 0, 0)},
		{name: "on the half", now: at(12, 30, 0, 0), want: at(13, 0, 0, 0)},
		{name: "on the hour", now: at(13, 0, 0, 0), want: at(13, 30, 0, 0)},
		{name: "day rollover", now: at(23, 45, 0, 0), want: time.Date(2025, time.February, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NextBoundary(tt.now); !got.Equal(tt.want) {
				t.Errorf("NextBoundary(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestInClickWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		now  time.Time
		want bool
	}{
		{now: at(12, 29, 59, 850), want: true},
		{now: at(12, 59, 59, 800), want: true},
		{now: at(12, 29, 59, 899), want: true},
		{now: at(12, 29, 59, 750), want: false},
		{now: at(12, 29, 59, 900), want: false},
		{now: at(12, 29, 58, 850), want: false},
		{now: at(12, 28, 59, 850), want: false},
		{now: at(12, 30, 0, 850), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.now.Format("15:04:05.000"), func(t *testing.T) {
			t.Parallel()
			if got := InClickWindow(tt.now); got != tt.want {
				t.Errorf("InClickWindow(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestUntilClampsAtZero(t *testing.T) {
	t.Parallel()

	target := at(12, 30, 0, 0)
	if got := Until(at(12, 29, 0, 0), target, 90*time.Second); got != 0 {
		t.Errorf("Until() = %v, want 0", got)
	}
	if got := Until(at(12, 20, 0, 0), target, 90*time.Second); got != 8*time.Minute+30*time.Second {
		t.Errorf("Until() = %v, want 8m30s", got)
	}
}
