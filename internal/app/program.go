package service

import (
	"fmt"
	"time"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/config"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/point"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/rules"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/engine"
)

// Reference program constants.
const (
	referenceLatchPreset = 3 * time.Second
	referenceScaleGain   = 2.0
	referenceScaleLimit  = 100.0
)

// ReferenceProgram returns the stock controller: a 3s on-delay latch
// X0->Y0 on T1, a parity output X1->Y1 counted on C1, and AO0 = min(2*AI0, 100).
func ReferenceProgram() config.Program {
	return config.Program{
		Digital: []config.PointSpec{
			{Name: "X0", Kind: "input", Address: "I0.0"},
			{Name: "X1", Kind: "input", Address: "I0.1"},
			{Name: "Y0", Kind: "output", Address: "Q0.0"},
			{Name: "Y1", Kind: "output", Address: "Q0.1"},
		},
		Analog: []config.PointSpec{
			{Name: "AI0", Kind: "input", Address: "IW0"},
			{Name: "AO0", Kind: "output", Address: "QW0"},
		},
		Timers:   []string{"T1"},
		Counters: []string{"C1"},
		Latches: []config.LatchSpec{
			{Input: "X0", Output: "Y0", Timer: "T1", PresetMS: int(referenceLatchPreset / time.Millisecond)},
		},
		Parities: []config.ParitySpec{
			{Input: "X1", Output: "Y1", Counter: "C1"},
		},
		Scales: []config.ScaleSpec{
			{Input: "AI0", Output: "AO0", Gain: config.Float(referenceScaleGain), Limit: config.Float(referenceScaleLimit)},
		},
	}
}

// Compile turns a program into the rule pipeline, in the order latches,
// parities, scales. A scale with no gain or limit takes the reference value.
func Compile(p *config.Program) []rules.Rule {
	pipeline := make([]rules.Rule, 0, len(p.Latches)+len(p.Parities)+len(p.Scales))
	for _, l := range p.Latches {
		preset := time.Duration(l.PresetMS) * time.Millisecond
		pipeline = append(pipeline, rules.NewTimedLatch(l.Input, l.Output, l.Timer, preset))
	}
	for _, pc := range p.Parities {
		pipeline = append(pipeline, rules.NewParityCounter(pc.Input, pc.Output, pc.Counter))
	}
	for _, s := range p.Scales {
		gain, limit := referenceScaleGain, referenceScaleLimit
		if s.Gain != nil {
			gain = *s.Gain
		}
		if s.Limit != nil {
			limit = *s.Limit
		}
		pipeline = append(pipeline, rules.NewAnalogScale(s.Input, s.Output, gain, limit))
	}
	return pipeline
}

// Build creates an engine running p. An empty program selects ReferenceProgram.
func Build(p config.Program, opts ...engine.Option) (*engine.Engine, error) {
	if p.Empty() {
		p = ReferenceProgram()
	}

	opts = append(opts, engine.WithRules(Compile(&p)...))
	e := engine.New(opts...)

	for _, spec := range p.Digital {
		kind, err := point.ParseKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("digital point %q: %w", spec.Name, err)
		}
		if err := e.RegisterDigital(spec.Name, kind, spec.Address); err != nil {
			return nil, err
		}
	}
	for _, spec := range p.Analog {
		kind, err := point.ParseKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("analog point %q: %w", spec.Name, err)
		}
		if err := e.RegisterAnalog(spec.Name, kind, spec.Address); err != nil {
			return nil, err
		}
	}
	for _, name := range p.Timers {
		if err := e.RegisterTimer(name); err != nil {
			return nil, err
		}
	}
	for _, name := range p.Counters {
		if err := e.RegisterCounter(name); err != nil {
			return nil, err
		}
	}
	return e, nil
}
