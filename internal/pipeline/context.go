package pipeline

// Context is the shared key/value accumulator for a single run. It is seeded
// from the caller's initial values and merged with every node's output as the
// traversal proceeds; later writes win on key collision. It is the sole
// channel carrying values between nodes, and it lives exactly as long as one
// Run call.
type Context struct {
	values map[string]any
}

// newContext seeds a fresh context, copying the initial values so the
// caller's map is never mutated by the run.
func newContext(initial map[string]any) *Context {
	c := &Context{values: make(map[string]any, len(initial))}
	for k, v := range initial {
		c.values[k] = v
	}
	return c
}

// Value reports the value stored under key, if any.
func (c *Context) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Merge folds a node's output into the context, overwriting existing keys.
func (c *Context) Merge(output map[string]any) {
	for k, v := range output {
		c.values[k] = v
	}
}

// Snapshot returns a copy of the accumulated values.
func (c *Context) Snapshot() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
