package rules

import (
	"fmt"
	"math"
)

// AnalogScale writes min(input*gain, limit) to its output each cycle.
// There is no lower clamp: negative inputs give negative outputs.
type AnalogScale struct {
	input, output string
	gain, limit   float64
}

// NewAnalogScale binds the rule to an analog (input, output) pair.
func NewAnalogScale(input, output string, gain, limit float64) *AnalogScale {
	return &AnalogScale{input: input, output: output, gain: gain, limit: limit}
}

func (r *AnalogScale) Name() string {
	return fmt.Sprintf("analog-scale(%s->%s)", r.input, r.output)
}

func (r *AnalogScale) Evaluate(img Image) {
	in, ok := img.AnalogInput(r.input)
	if !ok {
		return
	}
	img.SetAnalogOutput(r.output, math.Min(in*r.gain, r.limit))
}
