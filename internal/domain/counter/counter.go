// Package counter implements the up-counter used by controller rules.
package counter

// Counter is a monotonically increasing count. There is no reset and no
// upper bound; a uint64 only wraps after 2^64 increments.
// A Counter is not safe for concurrent use.
type Counter struct {
	name  string
	value uint64
}

// New returns a counter at zero.
func New(name string) *Counter {
	return &Counter{name: name}
}

// Name returns the counter name.
func (c *Counter) Name() string { return c.name }

// Increment adds one.
func (c *Counter) Increment() { c.value++ }

// Value returns the current count.
func (c *Counter) Value() uint64 { return c.value }
