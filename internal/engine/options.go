package engine

import (
	"time"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/rules"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/timer"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScanPeriod sets the target cycle period. Non-positive values are ignored.
func WithScanPeriod(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.period = d
		}
	}
}

// WithClock sets the time source used by timers and snapshots.
// Cycle pacing always uses the wall clock.
func WithClock(clock timer.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRules appends rules to the pipeline. They are evaluated in the order given.
func WithRules(rs ...rules.Rule) Option {
	return func(e *Engine) {
		for _, r := range rs {
			if r != nil {
				e.pipeline = append(e.pipeline, r)
			}
		}
	}
}
