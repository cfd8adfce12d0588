package config

import (
	"fmt"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/point"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
)

// Validate checks the settings Load cannot type-check.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.ScanPeriodMS <= 0 {
		return fmt.Errorf("%w: scan_period_ms must be positive, got %d", ErrInvalidConfig, c.ScanPeriodMS)
	}
	if c.PublishIntervalMS <= 0 {
		return fmt.Errorf("%w: publish_interval_ms must be positive, got %d", ErrInvalidConfig, c.PublishIntervalMS)
	}
	if !logger.ValidFormat(c.LogFormat) {
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return c.Program.validate()
}

func (p *Program) validate() error {
	for _, group := range [][]PointSpec{p.Digital, p.Analog} {
		for _, spec := range group {
			if spec.Name == "" {
				return fmt.Errorf("%w: point without a name", ErrInvalidConfig)
			}
			if _, err := point.ParseKind(spec.Kind); err != nil {
				return fmt.Errorf("%w: point %q: %w", ErrInvalidConfig, spec.Name, err)
			}
		}
	}
	for _, l := range p.Latches {
		if l.Input == "" || l.Output == "" || l.Timer == "" {
			return fmt.Errorf("%w: latch needs input, output and timer", ErrInvalidConfig)
		}
		if l.PresetMS <= 0 {
			return fmt.Errorf("%w: latch %s->%s: preset_ms must be positive", ErrInvalidConfig, l.Input, l.Output)
		}
	}
	for _, pc := range p.Parities {
		if pc.Input == "" || pc.Output == "" || pc.Counter == "" {
			return fmt.Errorf("%w: parity needs input, output and counter", ErrInvalidConfig)
		}
	}
	for _, s := range p.Scales {
		if s.Input == "" || s.Output == "" {
			return fmt.Errorf("%w: scale needs input and output", ErrInvalidConfig)
		}
		if s.Gain == nil || s.Limit == nil {
			return fmt.Errorf("%w: scale %s->%s needs gain and limit", ErrInvalidConfig, s.Input, s.Output)
		}
	}
	return nil
}
