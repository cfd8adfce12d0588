// Package service runs the controller: it builds the scan engine from a
// program, drives its lifecycle and mirrors its snapshots into metrics.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/config"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/point"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/timer"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/types"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/engine"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/metrics"
)

const defaultPublishInterval = 100 * time.Millisecond

// Service owns one engine and its snapshot publisher.
type Service struct {
	mu sync.RWMutex

	engine *engine.Engine

	// Configuration
	program         config.Program
	scanPeriod      time.Duration
	publishInterval time.Duration
	clock           timer.Clock

	// State
	started bool
	stopCh  chan struct{}
	done    chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scanPeriod:      engine.DefaultScanPeriod,
		publishInterval: defaultPublishInterval,
		logger:          nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the engine on first use and starts it together with the
// publisher. Program registration errors are returned here. Calling Start
// on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if s.engine == nil {
		eng, err := Build(s.program,
			engine.WithScanPeriod(s.scanPeriod),
			engine.WithClock(s.clock),
			engine.WithLogger(s.logger.Named("engine")),
		)
		if err != nil {
			return fmt.Errorf("build program: %w", err)
		}
		s.engine = eng
	}

	if err := s.engine.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	go s.publish(ctx, s.stopCh, s.done)

	s.started = true
	s.logger.Info(ctx, "controller started",
		logger.Duration("scanPeriod", s.scanPeriod),
		logger.Duration("publishInterval", s.publishInterval),
		logger.Any("rules", s.engine.Rules()),
	)

	return nil
}

// Stop halts the publisher and the engine. The process image is kept, so a
// later Start resumes from the same state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	close(s.stopCh)
	<-s.done
	s.engine.Stop()
	s.publishSnapshot(s.engine.Snapshot())

	s.started = false
	s.logger.Info(context.Background(), "controller stopped")
}

// Engine returns the controller engine, or nil before the first Start.
func (s *Service) Engine() *engine.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// Snapshot returns the current status. ok is false before the first Start.
func (s *Service) Snapshot() (status types.Status, ok bool) {
	eng := s.Engine()
	if eng == nil {
		return types.Status{}, false
	}
	return eng.Snapshot(), true
}

// publish mirrors a snapshot into metrics every publish interval.
func (s *Service) publish(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.publishInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.publishSnapshot(s.engine.Snapshot())
		}
	}
}

func (s *Service) publishSnapshot(st types.Status) {
	for name, v := range st.Inputs {
		metrics.UpdateDigitalPoint(name, point.Input.String(), v)
	}
	for name, v := range st.Outputs {
		metrics.UpdateDigitalPoint(name, point.Output.String(), v)
	}
	for name, v := range st.AnalogInputs {
		metrics.UpdateAnalogPoint(name, point.Input.String(), v)
	}
	for name, v := range st.AnalogOutputs {
		metrics.UpdateAnalogPoint(name, point.Output.String(), v)
	}
	for name, v := range st.Timers {
		metrics.UpdateTimerElapsed(name, v)
	}
	for name, v := range st.Counters {
		metrics.UpdateCounterValue(name, v)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"scanPeriodMs":      s.scanPeriod.Milliseconds(),
		"publishIntervalMs": s.publishInterval.Milliseconds(),
	}

	if s.engine != nil {
		st := s.engine.Snapshot()
		stats["running"] = st.Running
		stats["cycles"] = st.Cycles
		stats["scanTime"] = st.ScanTime
		stats["runId"] = st.RunID
		stats["rules"] = s.engine.Rules()
		stats["points"] = s.engine.Points()
	}

	return stats
}
