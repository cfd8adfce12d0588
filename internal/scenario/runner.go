// Package scenario drives an in-process controller through the reference
// behaviours and reports whether each one holds.
package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	service "github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/app"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/engine"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
)

const pollInterval = 500 * time.Microsecond

type step struct {
	name string
	run  func(ctx context.Context, r *runner) (string, error)
}

var steps = []step{ //nolint:gochecknoglobals // fixed run order
	{"timed-latch", checkTimedLatch},
	{"parity-counter", checkParityCounter},
	{"analog-scale", checkAnalogScale},
	{"snapshot-consistency", checkSnapshotConsistency},
	{"restart-retention", checkRestartRetention},
}

type runner struct {
	cfg    Config
	eng    *engine.Engine
	logger logger.Logger
}

// Run builds a fresh reference controller with the configured latch preset,
// starts it, and runs every check in order. It returns ErrScenarioFailed
// when any check fails; the report is returned either way.
func Run(ctx context.Context, config *Config) (*Report, error) {
	cfg := config.withDefaults()
	report := &Report{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	log := logger.Get().Named("scenario")

	program := service.ReferenceProgram()
	program.Latches[0].PresetMS = int(cfg.Preset / time.Millisecond)
	if program.Latches[0].PresetMS < 1 {
		program.Latches[0].PresetMS = 1
	}
	cfg.Preset = time.Duration(program.Latches[0].PresetMS) * time.Millisecond

	eng, err := service.Build(program,
		engine.WithScanPeriod(cfg.ScanPeriod),
		engine.WithLogger(log.Named("engine")),
	)
	if err != nil {
		return report, fmt.Errorf("build controller: %w", err)
	}

	log.Info(ctx, "starting scenario",
		logger.String("run_id", report.RunID),
		logger.Duration("preset", cfg.Preset),
		logger.Duration("scanPeriod", cfg.ScanPeriod),
		logger.Int("pulses", cfg.Pulses),
	)

	if err := eng.Start(ctx); err != nil {
		return report, fmt.Errorf("start controller: %w", err)
	}
	defer eng.Stop()

	r := &runner{cfg: cfg, eng: eng, logger: log}
	for _, s := range steps {
		start := time.Now()
		detail, err := s.run(ctx, r)
		check := Check{Name: s.name, Passed: err == nil, Detail: detail, Duration: time.Since(start)}
		if err != nil {
			check.Detail = err.Error()
			log.Warn(ctx, "check failed", logger.String("check", s.name), logger.Error(err))
		} else {
			log.Debug(ctx, "check passed", logger.String("check", s.name), logger.String("detail", detail))
		}
		report.Checks = append(report.Checks, check)

		if ctx.Err() != nil {
			break
		}
	}

	report.Duration = time.Since(report.StartTime)
	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%w: %s", ErrScenarioFailed, strings.Join(failed, ", "))
	}

	log.Info(ctx, "scenario passed",
		logger.Int("checks", len(report.Checks)),
		logger.Duration("duration", report.Duration),
	)
	return report, nil
}

// waitFor polls cond until it holds, the timeout elapses or ctx ends.
func (r *runner) waitFor(ctx context.Context, cond func() bool) bool {
	return r.waitUntil(ctx, time.Now().Add(r.cfg.Timeout), cond)
}

// waitUntil polls cond until it holds, deadline passes or ctx ends.
func (r *runner) waitUntil(ctx context.Context, deadline time.Time, cond func() bool) bool {
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(pollInterval):
		}
	}
	return cond()
}

// settle waits until n more cycles have completed.
func (r *runner) settle(ctx context.Context, n uint64) error {
	target := r.eng.Snapshot().Cycles + n
	if !r.waitFor(ctx, func() bool { return r.eng.Snapshot().Cycles >= target }) {
		return fmt.Errorf("engine did not complete %d cycles within %s", n, r.cfg.Timeout)
	}
	return nil
}
