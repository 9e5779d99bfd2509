// Package debounce provides a cancellable trailing-edge timer: repeated Arm
// calls within the window coalesce into a single firing of the callback.
package debounce

import (
	"sync"
	"time"
)

// Timer fires fn once the window elapses without another Arm call.
// Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	window time.Duration
	fn     func()
	timer  *time.Timer
}

// New creates a debounce timer. fn runs on the timer goroutine.
func New(window time.Duration, fn func()) *Timer {
	return &Timer{window: window, fn: fn}
}

// Arm starts the window, or resets it if already running. A burst of Arm
// calls results in exactly one firing, window after the last call.
func (t *Timer) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Reset(t.window)
		return
	}
	t.timer = time.AfterFunc(t.window, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		t.fn()
	})
}

// Stop cancels a pending firing, if any.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Pending reports whether a firing is currently scheduled.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}
