package engine

// Progress receives increments as the engine resolves nodes. The engine
// never reads a reporter's state back; implementations decide what to do
// with the counts.
type Progress interface {
	Add(n int)
}

// Counter is a Progress that tallies increments. Useful for summaries and
// tests; not safe for concurrent use, matching the engine's single-threaded
// evaluation.
type Counter struct {
	n int
}

// Add records n increments.
func (c *Counter) Add(n int) { c.n += n }

// Count returns the total recorded so far.
func (c *Counter) Count() int { return c.n }
