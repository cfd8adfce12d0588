// Package timer implements the on-delay stopwatch used by controller rules.
package timer

import "time"

// Clock returns the current time. Tests substitute a manual clock.
type Clock func() time.Time

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the time source.
func WithClock(clock Clock) Option {
	return func(t *Timer) {
		if clock != nil {
			t.now = clock
		}
	}
}

// Timer accumulates running time across start/stop spans.
// startedAt is meaningful only while running is true.
// A Timer is not safe for concurrent use.
type Timer struct {
	name        string
	accumulated time.Duration
	running     bool
	startedAt   time.Time
	now         Clock
}

// New returns a stopped timer with zero elapsed time.
func New(name string, opts ...Option) *Timer {
	t := &Timer{name: name, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the timer name.
func (t *Timer) Name() string { return t.name }

// Running reports whether the timer is accumulating.
func (t *Timer) Running() bool { return t.running }

// Start begins accumulating. No-op while running.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.startedAt = t.now()
	t.running = true
}

// Stop folds the current span into the accumulated time. No-op while stopped.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.accumulated += t.now().Sub(t.startedAt)
	t.startedAt = time.Time{}
	t.running = false
}

// Reset zeroes and stops the timer regardless of its state.
func (t *Timer) Reset() {
	t.accumulated = 0
	t.running = false
	t.startedAt = time.Time{}
}

// Elapsed returns accumulated time plus the open span, if any.
func (t *Timer) Elapsed() time.Duration {
	if !t.running {
		return t.accumulated
	}
	return t.accumulated + t.now().Sub(t.startedAt)
}
