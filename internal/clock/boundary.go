package clock

import "time"

// Period is the spacing between registration boundaries.
const Period = 30 * time.Minute

// NextBoundary returns the next :00 or :30 strictly after the current
// half-hour began, in t's location, with seconds and sub-seconds zeroed.
func NextBoundary(t time.Time) time.Time {
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	if t.Minute() < 30 {
		return hour.Add(30 * time.Minute)
	}
	return hour.Add(time.Hour)
}

// InClickWindow reports whether t falls in the 100ms slot just before a
// boundary: minute 29 or 59, second 59, millisecond in [800, 900).
func InClickWindow(t time.Time) bool {
	ms := t.Nanosecond() / int(time.Millisecond)
	return t.Minute()%30 == 29 && t.Second() == 59 && ms >= 800 && ms < 900
}

// Until returns target-lead-now clamped at zero.
func Until(now, target time.Time, lead time.Duration) time.Duration {
	d := target.Add(-lead).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
