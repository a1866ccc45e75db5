package present_test

import (
	"testing"
	"time"

	"pdfpresenter/internal/present"
)

// fakeClock is a hand-advanced clock for timer tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeTimer(update func(string)) (*present.PauseableTimer, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	return present.NewTimerWithClock(update, clock.Now, 0), clock
}

func TestTimer_StopResumesNotResets(t *testing.T) {
	var last string
	timer, clock := newFakeTimer(func(s string) { last = s })

	timer.Start()
	clock.Advance(1200 * time.Millisecond)
	if got := timer.Display(); got != "00:01" {
		t.Fatalf("at 1.2s: expected %q, got %q", "00:01", got)
	}
	timer.Stop()

	// Paused time does not count.
	clock.Advance(10 * time.Second)
	if got := timer.Elapsed(); got != 1200*time.Millisecond {
		t.Fatalf("expected elapsed frozen at 1.2s, got %v", got)
	}

	timer.Start()
	clock.Advance(300 * time.Millisecond)
	if got := timer.Elapsed(); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s after resume, got %v", got)
	}
	if got := timer.Display(); got != "00:01" {
		t.Fatalf("at 1.5s: expected %q (truncated), got %q", "00:01", got)
	}
	if last == "" {
		t.Fatal("expected the update callback to have fired")
	}
}

func TestTimer_StartWhileRunningIsNoOp(t *testing.T) {
	timer, clock := newFakeTimer(nil)
	timer.Start()
	clock.Advance(2 * time.Second)
	timer.Start() // must not reset the reference
	if got := timer.Elapsed(); got != 2*time.Second {
		t.Fatalf("expected 2s, got %v", got)
	}
	if !timer.Running() {
		t.Fatal("expected timer running")
	}
	timer.Stop()
	timer.Stop() // double stop is harmless
	if timer.Running() {
		t.Fatal("expected timer stopped")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{59 * time.Second, "00:59"},
		{60 * time.Second, "01:00"},
		{75 * time.Second, "01:15"},
		{61*time.Minute + time.Second, "61:01"}, // minutes are unbounded
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := present.FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTimer_TickerPushesUpdates(t *testing.T) {
	updates := make(chan string, 8)
	timer := present.NewTimerWithClock(func(s string) { updates <- s }, time.Now, 10*time.Millisecond)

	timer.Start()
	defer timer.Stop()

	// Start itself emits once, then the ticker keeps emitting.
	for i := 0; i < 3; i++ {
		select {
		case <-updates:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for a timer update")
		}
	}
}
