// Package point defines the controller's digital and analog I/O points and
// the registry that owns them.
//
// A Registry is not safe for concurrent use. The scan engine guards it with
// the same lock that covers a whole scan cycle.
package point

import (
	"fmt"
	"sort"
	"strings"
)

// Kind says which side of the process image a point lives on.
type Kind int

const (
	Input Kind = iota
	Output
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "input" or "output" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input":
		return Input, nil
	case "output":
		return Output, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Digital is a boolean I/O point.
type Digital struct {
	Name    string
	Kind    Kind
	Address string // informational only, e.g. "I0.0"
	Value   bool
}

// Analog is a floating-point I/O point.
type Analog struct {
	Name    string
	Kind    Kind
	Address string // informational only, e.g. "IW0"
	Value   float64
}

// Registry holds every registered point. Digital names are unique across
// inputs and outputs; analog names likewise. Points are never removed.
type Registry struct {
	digital map[string]*Digital
	analog  map[string]*Analog
}

// NewRegistry returns an empty registry with both digital and analog tables.
func NewRegistry() *Registry {
	return &Registry{
		digital: make(map[string]*Digital),
		analog:  make(map[string]*Analog),
	}
}

// RegisterDigital adds a digital point with value false.
func (r *Registry) RegisterDigital(name string, kind Kind, address string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if _, ok := r.digital[name]; ok {
		return fmt.Errorf("%w: digital point %q", ErrDuplicateName, name)
	}
	r.digital[name] = &Digital{Name: name, Kind: kind, Address: address}
	return nil
}

// RegisterAnalog adds an analog point with value 0.
func (r *Registry) RegisterAnalog(name string, kind Kind, address string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if _, ok := r.analog[name]; ok {
		return fmt.Errorf("%w: analog point %q", ErrDuplicateName, name)
	}
	r.analog[name] = &Analog{Name: name, Kind: kind, Address: address}
	return nil
}

// SetDigitalInput is the external write path. Outputs are refused.
func (r *Registry) SetDigitalInput(name string, v bool) error {
	p, err := r.digitalOf(name, Input)
	if err != nil {
		return err
	}
	p.Value = v
	return nil
}

// SetAnalogInput is the external write path for analog inputs.
func (r *Registry) SetAnalogInput(name string, v float64) error {
	p, err := r.analogOf(name, Input)
	if err != nil {
		return err
	}
	p.Value = v
	return nil
}

// SetDigitalOutput is the rule write path. Inputs are refused.
func (r *Registry) SetDigitalOutput(name string, v bool) error {
	p, err := r.digitalOf(name, Output)
	if err != nil {
		return err
	}
	p.Value = v
	return nil
}

// SetAnalogOutput is the rule write path for analog outputs.
func (r *Registry) SetAnalogOutput(name string, v float64) error {
	p, err := r.analogOf(name, Output)
	if err != nil {
		return err
	}
	p.Value = v
	return nil
}

// DigitalInput reads an input; unknown names and outputs report an error.
func (r *Registry) DigitalInput(name string) (bool, error) {
	p, err := r.digitalOf(name, Input)
	if err != nil {
		return false, err
	}
	return p.Value, nil
}

// AnalogInput reads an analog input.
func (r *Registry) AnalogInput(name string) (float64, error) {
	p, err := r.analogOf(name, Input)
	if err != nil {
		return 0, err
	}
	return p.Value, nil
}

// DigitalOutput reads an output; unknown names and inputs report an error.
func (r *Registry) DigitalOutput(name string) (bool, error) {
	p, err := r.digitalOf(name, Output)
	if err != nil {
		return false, err
	}
	return p.Value, nil
}

// AnalogOutput reads an analog output.
func (r *Registry) AnalogOutput(name string) (float64, error) {
	p, err := r.analogOf(name, Output)
	if err != nil {
		return 0, err
	}
	return p.Value, nil
}

// DigitalValues copies the values of all digital points of kind.
func (r *Registry) DigitalValues(kind Kind) map[string]bool {
	out := make(map[string]bool)
	for name, p := range r.digital {
		if p.Kind == kind {
			out[name] = p.Value
		}
	}
	return out
}

// AnalogValues copies the values of all analog points of kind.
func (r *Registry) AnalogValues(kind Kind) map[string]float64 {
	out := make(map[string]float64)
	for name, p := range r.analog {
		if p.Kind == kind {
			out[name] = p.Value
		}
	}
	return out
}

// DigitalPoints returns copies of all digital points sorted by name.
func (r *Registry) DigitalPoints() []Digital {
	out := make([]Digital, 0, len(r.digital))
	for _, p := range r.digital {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AnalogPoints returns copies of all analog points sorted by name.
func (r *Registry) AnalogPoints() []Analog {
	out := make([]Analog, 0, len(r.analog))
	for _, p := range r.analog {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) digitalOf(name string, kind Kind) (*Digital, error) {
	p, ok := r.digital[name]
	if !ok {
		return nil, fmt.Errorf("%w: digital point %q", ErrUnknownPoint, name)
	}
	if p.Kind != kind {
		return nil, fmt.Errorf("%w: digital point %q is an %s", ErrWrongKind, name, p.Kind)
	}
	return p, nil
}

func (r *Registry) analogOf(name string, kind Kind) (*Analog, error) {
	p, ok := r.analog[name]
	if !ok {
		return nil, fmt.Errorf("%w: analog point %q", ErrUnknownPoint, name)
	}
	if p.Kind != kind {
		return nil, fmt.Errorf("%w: analog point %q is an %s", ErrWrongKind, name, p.Kind)
	}
	return p, nil
}

func checkKind(kind Kind) error {
	if kind != Input && kind != Output {
		return fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	return nil
}
