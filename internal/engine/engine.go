// Package engine runs the controller's scan cycle.
//
// One mutex guards the whole process image (points, timers, counters, edge
// history) together with the running flag and scan statistics. It is held
// for exactly one cycle, one snapshot or one external read/write, so every
// observer sees the state between two cycles and never in the middle of one.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/counter"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/point"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/rules"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/timer"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/types"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/metrics"
)

// DefaultScanPeriod is the target cycle period when none is configured.
const DefaultScanPeriod = 10 * time.Millisecond

const (
	signalDigital = "digital"
	signalAnalog  = "analog"
)

// Engine owns the process image and the rule pipeline.
type Engine struct {
	mu       sync.Mutex
	points   *point.Registry
	timers   map[string]*timer.Timer
	counters map[string]*counter.Counter
	edges    *rules.EdgeTracker
	pipeline []rules.Rule
	running  bool
	lastScan time.Duration
	cycles   uint64
	runID    string

	// lifecycle serialises Start and Stop. stop and done are nil while no
	// loop has been started since the last Stop.
	lifecycle sync.Mutex
	stop      chan struct{}
	done      chan struct{}

	period time.Duration
	now    timer.Clock
	logger logger.Logger
}

// New creates a stopped engine with empty registries.
func New(opts ...Option) *Engine {
	e := &Engine{
		points:   point.NewRegistry(),
		timers:   make(map[string]*timer.Timer),
		counters: make(map[string]*counter.Counter),
		edges:    rules.NewEdgeTracker(),
		period:   DefaultScanPeriod,
		now:      time.Now,
		logger:   logger.Get().Named("engine"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Period returns the target cycle period.
func (e *Engine) Period() time.Duration { return e.period }

// RegisterDigital adds a digital point.
func (e *Engine) RegisterDigital(name string, kind point.Kind, address string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.points.RegisterDigital(name, kind, address)
}

// RegisterAnalog adds an analog point.
func (e *Engine) RegisterAnalog(name string, kind point.Kind, address string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.points.RegisterAnalog(name, kind, address)
}

// RegisterTimer adds a stopped timer driven by the engine clock.
func (e *Engine) RegisterTimer(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.timers[name]; ok {
		return fmt.Errorf("%w: timer %q", ErrDuplicateName, name)
	}
	e.timers[name] = timer.New(name, timer.WithClock(e.now))
	return nil
}

// RegisterCounter adds a counter at zero.
func (e *Engine) RegisterCounter(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.counters[name]; ok {
		return fmt.Errorf("%w: counter %q", ErrDuplicateName, name)
	}
	e.counters[name] = counter.New(name)
	return nil
}

// Rules returns the pipeline rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.pipeline))
	for i, r := range e.pipeline {
		names[i] = r.Name()
	}
	return names
}

// Points lists every registered point, digital first, each group sorted by name.
func (e *Engine) Points() []types.PointInfo {
	e.mu.Lock()
	digital := e.points.DigitalPoints()
	analog := e.points.AnalogPoints()
	e.mu.Unlock()

	out := make([]types.PointInfo, 0, len(digital)+len(analog))
	for _, p := range digital {
		out = append(out, types.PointInfo{Name: p.Name, Signal: signalDigital, Kind: p.Kind.String(), Address: p.Address})
	}
	for _, p := range analog {
		out = append(out, types.PointInfo{Name: p.Name, Signal: signalAnalog, Kind: p.Kind.String(), Address: p.Address})
	}
	return out
}

// WriteDigitalInput sets a digital input. Unknown names and outputs are ignored.
func (e *Engine) WriteDigitalInput(name string, v bool) {
	e.mu.Lock()
	err := e.points.SetDigitalInput(name, v)
	e.mu.Unlock()
	e.recordWrite(signalDigital, name, err)
}

// WriteAnalogInput sets an analog input. Unknown names and outputs are ignored.
func (e *Engine) WriteAnalogInput(name string, v float64) {
	e.mu.Lock()
	err := e.points.SetAnalogInput(name, v)
	e.mu.Unlock()
	e.recordWrite(signalAnalog, name, err)
}

// ReadDigitalOutput returns false for unknown names and inputs.
func (e *Engine) ReadDigitalOutput(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, _ := e.points.DigitalOutput(name)
	return v
}

// ReadAnalogOutput returns 0 for unknown names and inputs.
func (e *Engine) ReadAnalogOutput(name string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, _ := e.points.AnalogOutput(name)
	return v
}

func (e *Engine) recordWrite(signal, name string, err error) {
	if err == nil {
		metrics.RecordPointWrite(signal)
		return
	}

	reason := "unknown_point"
	if errors.Is(err, point.ErrWrongKind) {
		reason = "wrong_kind"
	}
	metrics.RecordPointWriteRejected(signal, reason)
	e.logger.Debug(context.Background(), "input write ignored",
		logger.String("point", name),
		logger.String("reason", reason),
	)
}

// Scan runs one cycle: every rule in order, then edge history is committed.
// It returns the cycle duration, which also becomes the reported scan time.
func (e *Engine) Scan(ctx context.Context) time.Duration {
	start := time.Now()

	e.mu.Lock()
	img := scanImage{e: e}
	for _, r := range e.pipeline {
		e.evaluate(ctx, r, img)
	}
	e.edges.Commit()
	elapsed := time.Since(start)
	e.lastScan = elapsed
	e.cycles++
	e.mu.Unlock()

	metrics.RecordScanCycle(float64(elapsed) / float64(time.Millisecond))
	return elapsed
}

// evaluate runs one rule. A panic is logged and counted, and the cycle goes on.
func (e *Engine) evaluate(ctx context.Context, r rules.Rule, img rules.Image) {
	defer func() {
		if p := recover(); p != nil {
			metrics.RecordRuleFault(r.Name())
			e.logger.Error(ctx, "rule fault",
				logger.String("rule", r.Name()),
				logger.Any("panic", p),
			)
		}
	}()
	r.Evaluate(img)
}

// Start launches the scan loop. Calling it while the loop runs is a no-op.
// The loop ends on Stop or when ctx is canceled.
func (e *Engine) Start(ctx context.Context) error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStartCanceled, err)
	}

	if e.done != nil {
		select {
		case <-e.done:
			// the previous loop ended with its context; start over
		default:
			return nil
		}
	}

	runID := uuid.NewString()
	e.mu.Lock()
	e.running = true
	e.runID = runID
	e.mu.Unlock()

	metrics.RecordEngineStart()
	metrics.UpdateEngineRunning(true)

	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	go e.run(ctx, e.stop, e.done)

	e.logger.Info(ctx, "engine started",
		logger.String("run_id", runID),
		logger.Duration("period", e.period),
		logger.Int("rules", len(e.pipeline)),
	)
	return nil
}

// Stop ends the scan loop after the current cycle and waits for it.
// Calling it while stopped is a no-op.
func (e *Engine) Stop() {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if e.done == nil {
		return
	}

	select {
	case <-e.done:
	default:
		close(e.stop)
		<-e.done
	}
	e.stop, e.done = nil, nil

	e.logger.Info(context.Background(), "engine stopped")
}

// Running reports whether the scan loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// run paces cycles so each starts one period after the previous one did.
// An overrun starts the next cycle immediately.
func (e *Engine) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		metrics.UpdateEngineRunning(false)
		close(done)
	}()

	wait := time.NewTimer(0)
	defer wait.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-wait.C:
		}

		elapsed := e.Scan(ctx)
		next := e.period - elapsed
		if next <= 0 {
			metrics.RecordScanOverrun()
			next = 0
		}
		wait.Reset(next)
	}
}

// Snapshot captures the state between two cycles. The returned maps are
// freshly allocated.
func (e *Engine) Snapshot() types.Status {
	e.mu.Lock()
	st := types.Status{
		Inputs:        e.points.DigitalValues(point.Input),
		Outputs:       e.points.DigitalValues(point.Output),
		AnalogInputs:  e.points.AnalogValues(point.Input),
		AnalogOutputs: e.points.AnalogValues(point.Output),
		Timers:        make(map[string]float64, len(e.timers)),
		Counters:      make(map[string]uint64, len(e.counters)),
		ScanTime:      e.lastScan.Seconds(),
		Running:       e.running,
		Cycles:        e.cycles,
		RunID:         e.runID,
		TakenAt:       e.now(),
	}
	for name, t := range e.timers {
		st.Timers[name] = t.Elapsed().Seconds()
	}
	for name, c := range e.counters {
		st.Counters[name] = c.Value()
	}
	e.mu.Unlock()

	metrics.RecordSnapshot()
	return st
}
