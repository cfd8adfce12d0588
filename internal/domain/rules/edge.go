package rules

// Edge is a boolean transition between two consecutive cycles.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "none"
	}
}

// EdgeTracker remembers each signal's value as of the end of the previous
// cycle. Signals never seen before count as false.
type EdgeTracker struct {
	prev map[string]bool
	next map[string]bool
}

// NewEdgeTracker returns a tracker with no history.
func NewEdgeTracker() *EdgeTracker {
	return &EdgeTracker{
		prev: make(map[string]bool),
		next: make(map[string]bool),
	}
}

// Detect compares current with the committed value and stages current for
// the next cycle. Repeated calls within a cycle see the same baseline.
func (t *EdgeTracker) Detect(signal string, current bool) Edge {
	t.next[signal] = current
	prev := t.prev[signal]
	switch {
	case current && !prev:
		return EdgeRising
	case !current && prev:
		return EdgeFalling
	default:
		return EdgeNone
	}
}

// Commit makes the values staged during this cycle the new baseline.
func (t *EdgeTracker) Commit() {
	for signal, v := range t.next {
		t.prev[signal] = v
	}
	clear(t.next)
}
