package ecs

// Commands buffers structural changes requested during a tick so that
// membership lists and component stores are never mutated mid-pass.
// The orchestrator flushes the buffer strictly between ticks.
type Commands struct {
	removes []Handle
	defers  []func()
}

func NewCommands() *Commands {
	return &Commands{}
}

// Remove queues an entity removal. Queuing the same handle more than once
// is harmless; removal is idempotent at flush time.
func (c *Commands) Remove(h Handle) {
	c.removes = append(c.removes, h)
}

// Defer queues a function to run after the removals are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all queued operations, calling remove for each queued
// handle, then resets the buffer.
func (c *Commands) Flush(remove func(Handle)) {
	for _, h := range c.removes {
		remove(h)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
