package clock

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFakeFiresInOrder(t *testing.T) {
	t.Parallel()

	c := NewFake(at(12, 0, 0, 0))
	var got []string
	c.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	c.AfterFunc(time.Second, func() { got = append(got, "a") })
	stopped := c.AfterFunc(1500*time.Millisecond, func() { got = append(got, "x") })
	if !stopped.Stop() {
		t.Fatal("Stop() = false, want true")
	}

	c.Advance(3 * time.Second)

	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("fire order mismatch (-want +got):\n%s", diff)
	}
	if want := at(12, 0, 3, 0); !c.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", c.Now(), want)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestFakeRearmedTimerFiresWithinAdvance(t *testing.T) {
	t.Parallel()

	c := NewFake(at(12, 0, 0, 0))
	n := 0
	var tick func()
	tick = func() {
		n++
		c.AfterFunc(5*time.Millisecond, tick)
	}
	c.AfterFunc(5*time.Millisecond, tick)

	c.Advance(100 * time.Millisecond)

	if n != 20 {
		t.Errorf("ticks = %d, want 20", n)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}
}
