package event

// Queue is the outbound event buffer. The simulation is single-threaded,
// so a plain slice suffices: engines push during a tick, the orchestrator
// drains once after the tick completes. This core only produces events;
// it never subscribes.
type Queue struct {
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event.
func (q *Queue) Push(t Type, payload any) {
	q.events = append(q.events, Event{Type: t, Payload: payload})
}

// Drain returns all pending events in publish order and resets the queue.
// Returns nil when no events are pending.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}
