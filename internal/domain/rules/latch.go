package rules

import (
	"fmt"
	"time"
)

// TimedLatch asserts an output once its input has been held true for at
// least preset, and drops it on the input's falling edge.
//
//	Idle    -> Timing   rising edge (timer reset and started)
//	Timing  -> Latched  input true and elapsed >= preset
//	Timing  -> Idle     falling edge (timer stopped and reset, output false)
//	Latched -> Idle     falling edge
//
// Only a falling edge clears the output. Resetting the timer while Latched
// keeps it set; resetting it while Timing restarts the on-delay.
type TimedLatch struct {
	input, output, timer string
	preset               time.Duration
}

// NewTimedLatch binds the rule to an (input, output, timer) triple.
func NewTimedLatch(input, output, timer string, preset time.Duration) *TimedLatch {
	return &TimedLatch{input: input, output: output, timer: timer, preset: preset}
}

func (r *TimedLatch) Name() string {
	return fmt.Sprintf("timed-latch(%s->%s,%s)", r.input, r.output, r.timer)
}

func (r *TimedLatch) Evaluate(img Image) {
	in, ok := img.DigitalInput(r.input)
	if !ok {
		return
	}
	if _, ok := img.DigitalOutput(r.output); !ok {
		return
	}
	t := img.Timer(r.timer)
	if t == nil {
		return
	}

	switch img.Edge(r.input, in) {
	case EdgeRising:
		t.Reset()
		t.Start()
	case EdgeFalling:
		t.Stop()
		t.Reset()
		img.SetDigitalOutput(r.output, false)
	}

	// A timer stopped or reset behind the rule's back resumes while the
	// input is held, so the output still latches.
	if in && !t.Running() {
		t.Start()
	}

	if in && t.Elapsed() >= r.preset {
		img.SetDigitalOutput(r.output, true)
	}
}
