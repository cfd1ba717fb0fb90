package cast

// Counter assigns dense, monotonically increasing statement identifiers
// in traversal order. Reset() lets a caller re-run numbering from a
// known state (spec §8's "numbering stability" property: numbering twice
// with the same counter reset yields identical sid assignments).
type Counter struct {
	next Sid
}

// NewCounter returns a Counter whose first assignment is sid 1.
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next allocates and returns the next sid, advancing the counter.
func (c *Counter) Next() Sid {
	s := c.next
	c.next++
	return s
}

// Peek returns the sid Next() would return without allocating it.
func (c *Counter) Peek() Sid {
	return c.next
}

// Reset rewinds the counter to its initial state (next assignment is
// sid 1 again).
func (c *Counter) Reset() {
	c.next = 1
}

// Count returns the number of sids allocated so far.
func (c *Counter) Count() uint64 {
	return uint64(c.next - 1)
}
