// Package rules defines the controller's rule pipeline.
//
// A rule is evaluated once per scan cycle against an Image of the process
// state. Rules are total: when a point, timer or counter they are bound to
// does not exist, the rule does nothing for that cycle.
package rules

import (
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/counter"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/timer"
)

// Image is the process state a rule may read and mutate during one cycle.
// The engine provides it while holding its state lock.
type Image interface {
	// DigitalInput returns an input value and whether the input exists.
	DigitalInput(name string) (bool, bool)
	// DigitalOutput returns an output value and whether the output exists.
	DigitalOutput(name string) (bool, bool)
	// SetDigitalOutput writes an output. It returns false if there is no such output.
	SetDigitalOutput(name string, v bool) bool

	AnalogInput(name string) (float64, bool)
	AnalogOutput(name string) (float64, bool)
	SetAnalogOutput(name string, v float64) bool

	// Timer and Counter return nil when nothing is registered under name.
	Timer(name string) *timer.Timer
	Counter(name string) *counter.Counter

	// Edge reports the transition of signal since the previous cycle.
	Edge(signal string, current bool) Edge
}

// Rule is one step of the pipeline.
type Rule interface {
	Name() string
	Evaluate(img Image)
}

type funcRule struct {
	name string
	fn   func(Image)
}

func (r funcRule) Name() string       { return r.name }
func (r funcRule) Evaluate(img Image) { r.fn(img) }

// Func adapts a plain function to a Rule.
func Func(name string, fn func(Image)) Rule {
	return funcRule{name: name, fn: fn}
}
