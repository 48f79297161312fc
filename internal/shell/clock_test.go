package shell

import (
	"testing"
	"time"
)

func TestClockCarriesRemainder(t *testing.T) {
	c := NewClock(100 * time.Millisecond)
	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	if n := c.Due(start); n != 0 {
		t.Fatalf("expected first call to only start the clock, got %d", n)
	}
	if n := c.Due(start.Add(250 * time.Millisecond)); n != 2 {
		t.Fatalf("expected 2 steps got %d", n)
	}
	if c.Pending() != 50*time.Millisecond {
		t.Fatalf("expected 50ms pending got %s", c.Pending())
	}
	if n := c.Due(start.Add(300 * time.Millisecond)); n != 1 {
		t.Fatalf("expected carried time to complete a step, got %d", n)
	}
}

func TestClockPauseDropsTime(t *testing.T) {
	c := NewClock(time.Second)
	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	c.Start(start)
	if !c.Toggle() {
		t.Fatalf("expected clock paused")
	}
	if n := c.Due(start.Add(5 * time.Second)); n != 0 {
		t.Fatalf("expected no steps while paused got %d", n)
	}
	c.Toggle()
	if n := c.Due(start.Add(6 * time.Second)); n != 1 {
		t.Fatalf("expected paused time to be dropped, got %d steps", n)
	}
}

func TestClockIgnoresTimeGoingBackwards(t *testing.T) {
	c := NewClock(time.Second)
	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	c.Start(start)
	if n := c.Due(start.Add(-time.Minute)); n != 0 {
		t.Fatalf("expected no steps got %d", n)
	}
}
