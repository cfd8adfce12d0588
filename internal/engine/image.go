package engine

import (
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/counter"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/rules"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/timer"
)

// scanImage exposes engine state to rules. It is only handed out while
// Scan holds e.mu.
type scanImage struct {
	e *Engine
}

var _ rules.Image = scanImage{}

func (s scanImage) DigitalInput(name string) (bool, bool) {
	v, err := s.e.points.DigitalInput(name)
	return v, err == nil
}

func (s scanImage) DigitalOutput(name string) (bool, bool) {
	v, err := s.e.points.DigitalOutput(name)
	return v, err == nil
}

func (s scanImage) SetDigitalOutput(name string, v bool) bool {
	return s.e.points.SetDigitalOutput(name, v) == nil
}

func (s scanImage) AnalogInput(name string) (float64, bool) {
	v, err := s.e.points.AnalogInput(name)
	return v, err == nil
}

func (s scanImage) AnalogOutput(name string) (float64, bool) {
	v, err := s.e.points.AnalogOutput(name)
	return v, err == nil
}

func (s scanImage) SetAnalogOutput(name string, v float64) bool {
	return s.e.points.SetAnalogOutput(name, v) == nil
}

func (s scanImage) Timer(name string) *timer.Timer       { return s.e.timers[name] }
func (s scanImage) Counter(name string) *counter.Counter { return s.e.counters[name] }

func (s scanImage) Edge(signal string, current bool) rules.Edge {
	return s.e.edges.Detect(signal, current)
}
