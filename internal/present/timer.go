package present

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTick is how often a running timer pushes a display update.
const DefaultTick = 500 * time.Millisecond

// PauseableTimer is the talk stopwatch. Stop pauses rather than resets:
// elapsed time folds into an accumulator and the next Start resumes from
// there. Updates are pushed through the callback as formatted mm:ss text;
// the callback runs on the ticker goroutine, so it must hand the value to
// the UI thread itself (the app layer does this via runtime events).
type PauseableTimer struct {
	mu          sync.Mutex
	accumulated time.Duration
	reference   time.Time
	running     bool

	update func(display string)
	clock  func() time.Time
	tick   time.Duration
	stopCh chan struct{}
}

// NewTimer returns a wall-clock timer ticking every DefaultTick.
func NewTimer(update func(string)) *PauseableTimer {
	return NewTimerWithClock(update, time.Now, DefaultTick)
}

// NewTimerWithClock returns a timer with an injected clock. A tick of 0
// disables the background ticker; elapsed time is then only observable
// through Elapsed and Display.
func NewTimerWithClock(update func(string), clock func() time.Time, tick time.Duration) *PauseableTimer {
	return &PauseableTimer{update: update, clock: clock, tick: tick}
}

// Start begins (or resumes) the stopwatch. Starting a running timer is a
// no-op.
func (t *PauseableTimer) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.reference = t.clock()
	t.running = true
	if t.tick > 0 {
		t.stopCh = make(chan struct{})
		go t.run(t.stopCh)
	}
	t.mu.Unlock()

	t.emit()
}

// Stop pauses the stopwatch, folding the running span into the accumulator.
func (t *PauseableTimer) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.accumulated += t.clock().Sub(t.reference)
	t.running = false
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
	t.mu.Unlock()

	t.emit()
}

// Running reports whether the stopwatch is currently counting.
func (t *PauseableTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Elapsed returns the total measured time so far.
func (t *PauseableTimer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

// Display returns the current elapsed time formatted as mm:ss.
func (t *PauseableTimer) Display() string {
	return FormatElapsed(t.Elapsed())
}

func (t *PauseableTimer) elapsedLocked() time.Duration {
	if t.running {
		return t.accumulated + t.clock().Sub(t.reference)
	}
	return t.accumulated
}

func (t *PauseableTimer) run(stop <-chan struct{}) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.emit()
		case <-stop:
			return
		}
	}
}

func (t *PauseableTimer) emit() {
	if t.update != nil {
		t.update(t.Display())
	}
}

// FormatElapsed renders a duration as zero-padded mm:ss. Fractional seconds
// truncate, and minutes are unbounded rather than wrapping at an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
