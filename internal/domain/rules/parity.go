package rules

import "fmt"

// ParityCounter counts rising edges of its input and asserts its output
// while the count is even and non-zero.
type ParityCounter struct {
	input, output, counter string
}

// NewParityCounter binds the rule to an (input, output, counter) triple.
func NewParityCounter(input, output, counter string) *ParityCounter {
	return &ParityCounter{input: input, output: output, counter: counter}
}

func (r *ParityCounter) Name() string {
	return fmt.Sprintf("parity-counter(%s->%s,%s)", r.input, r.output, r.counter)
}

func (r *ParityCounter) Evaluate(img Image) {
	in, ok := img.DigitalInput(r.input)
	if !ok {
		return
	}
	if _, ok := img.DigitalOutput(r.output); !ok {
		return
	}
	c := img.Counter(r.counter)
	if c == nil {
		return
	}

	if img.Edge(r.input, in) == EdgeRising {
		c.Increment()
	}

	n := c.Value()
	img.SetDigitalOutput(r.output, n > 0 && n%2 == 0)
}
