package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errTimeout = errors.New("timed out")

// checkTimedLatch holds X0 and expects Y0 only after the preset, then drops
// X0 and expects Y0 false with T1 back at zero.
func checkTimedLatch(ctx context.Context, r *runner) (string, error) {
	e := r.eng
	if err := r.settle(ctx, 1); err != nil {
		return "", err
	}

	pressed := time.Now()
	e.WriteDigitalInput("X0", true)

	if err := sleep(ctx, r.cfg.Preset/2); err != nil {
		return "", err
	}
	if e.ReadDigitalOutput("Y0") {
		return "", fmt.Errorf("Y0 asserted after %s, before the %s preset", time.Since(pressed).Round(time.Millisecond), r.cfg.Preset)
	}

	deadline := pressed.Add(r.cfg.Preset + r.cfg.Timeout)
	if !r.waitUntil(ctx, deadline, func() bool { return e.ReadDigitalOutput("Y0") }) {
		return "", fmt.Errorf("Y0 not asserted within %s of the preset: %w", r.cfg.Timeout, errTimeout)
	}
	delay := time.Since(pressed)
	if delay < r.cfg.Preset {
		return "", fmt.Errorf("Y0 asserted after %s, preset is %s", delay, r.cfg.Preset)
	}

	e.WriteDigitalInput("X0", false)
	if !r.waitFor(ctx, func() bool { return !e.ReadDigitalOutput("Y0") }) {
		return "", fmt.Errorf("Y0 still asserted after release: %w", errTimeout)
	}
	if t1 := e.Snapshot().Timers["T1"]; t1 != 0 {
		return "", fmt.Errorf("T1 not reset after release: %.3fs", t1)
	}

	return fmt.Sprintf("Y0 latched %s after X0", delay.Round(time.Millisecond)), nil
}

// checkParityCounter feeds rising edges into X1 and verifies C1 and Y1
// after every pulse.
func checkParityCounter(ctx context.Context, r *runner) (string, error) {
	e := r.eng
	base := e.Snapshot().Counters["C1"]

	for i := 1; i <= r.cfg.Pulses; i++ {
		e.WriteDigitalInput("X1", true)
		if err := r.settle(ctx, 2); err != nil {
			return "", err
		}
		e.WriteDigitalInput("X1", false)
		if err := r.settle(ctx, 2); err != nil {
			return "", err
		}

		st := e.Snapshot()
		c := st.Counters["C1"]
		if want := base + uint64(i); c != want {
			return "", fmt.Errorf("after pulse %d C1=%d, want %d", i, c, want)
		}
		if want := c > 0 && c%2 == 0; st.Outputs["Y1"] != want {
			return "", fmt.Errorf("after pulse %d Y1=%t with C1=%d", i, st.Outputs["Y1"], c)
		}
	}

	st := e.Snapshot()
	return fmt.Sprintf("C1=%d Y1=%t", st.Counters["C1"], st.Outputs["Y1"]), nil
}

// checkAnalogScale writes AI0 values and expects AO0 = min(2*AI0, 100).
func checkAnalogScale(ctx context.Context, r *runner) (string, error) {
	e := r.eng
	cases := []struct{ in, want float64 }{
		{60, 100},
		{30, 60},
		{0, 0},
		{50, 100},
		{-10, -20},
	}

	for _, c := range cases {
		e.WriteAnalogInput("AI0", c.in)
		if err := r.settle(ctx, 2); err != nil {
			return "", err
		}
		if got := e.ReadAnalogOutput("AO0"); got != c.want {
			return "", fmt.Errorf("AI0=%g gave AO0=%g, want %g", c.in, got, c.want)
		}
	}

	return fmt.Sprintf("%d values scaled", len(cases)), nil
}

// checkSnapshotConsistency samples snapshots while X1 toggles and rejects
// any snapshot where Y1 disagrees with C1.
func checkSnapshotConsistency(ctx context.Context, r *runner) (string, error) {
	e := r.eng
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		v := false
		for {
			select {
			case <-done:
				e.WriteDigitalInput("X1", false)
				return
			default:
			}
			v = !v
			e.WriteDigitalInput("X1", v)
			time.Sleep(r.cfg.ScanPeriod)
		}
	}()

	torn := 0
	for i := 0; i < r.cfg.Samples && ctx.Err() == nil; i++ {
		st := e.Snapshot()
		c := st.Counters["C1"]
		if st.Outputs["Y1"] != (c > 0 && c%2 == 0) {
			torn++
		}
		time.Sleep(pollInterval)
	}
	close(done)
	<-stopped

	if torn > 0 {
		return "", fmt.Errorf("%d of %d snapshots were inconsistent", torn, r.cfg.Samples)
	}
	return fmt.Sprintf("%d snapshots consistent", r.cfg.Samples), nil
}

// checkRestartRetention stops and restarts the engine and expects the
// process image to survive under a new run id.
func checkRestartRetention(ctx context.Context, r *runner) (string, error) {
	e := r.eng
	if err := r.settle(ctx, 1); err != nil {
		return "", err
	}

	e.Stop()
	before := e.Snapshot()
	if before.Running {
		return "", errors.New("engine still running after Stop")
	}

	if err := e.Start(ctx); err != nil {
		return "", err
	}
	if err := r.settle(ctx, 1); err != nil {
		return "", err
	}
	after := e.Snapshot()

	switch {
	case !after.Running:
		return "", errors.New("engine not running after Start")
	case after.RunID == before.RunID:
		return "", errors.New("run id unchanged across restart")
	case after.Counters["C1"] != before.Counters["C1"]:
		return "", fmt.Errorf("C1 changed across restart: %d -> %d", before.Counters["C1"], after.Counters["C1"])
	case after.AnalogOutputs["AO0"] != before.AnalogOutputs["AO0"]:
		return "", fmt.Errorf("AO0 changed across restart: %g -> %g", before.AnalogOutputs["AO0"], after.AnalogOutputs["AO0"])
	}

	return fmt.Sprintf("state kept, C1=%d", after.Counters["C1"]), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
