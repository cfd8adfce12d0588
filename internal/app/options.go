package service

import (
	"time"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/config"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/timer"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScanPeriod sets the engine's target cycle period.
func WithScanPeriod(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.scanPeriod = d
		}
	}
}

// WithPublishInterval sets how often snapshots are mirrored into metrics.
func WithPublishInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishInterval = d
		}
	}
}

// WithProgram sets the controller program. An empty program keeps the reference one.
func WithProgram(p config.Program) Option {
	return func(s *Service) {
		s.program = p
	}
}

// WithClock sets the engine time source.
func WithClock(clock timer.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// FromConfig maps loaded configuration onto service options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithScanPeriod(cfg.ScanPeriod()),
		WithPublishInterval(cfg.PublishInterval()),
		WithProgram(cfg.Program),
	}
}
