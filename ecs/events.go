package ecs

// EventType identifies gameplay events recorded during a frame.
type EventType string

const (
	EventSpawned EventType = "spawned"
	EventReaped  EventType = "reaped"
)

// Event is a gameplay event. Name is the template of the entity.
type Event struct {
	Type   EventType
	Entity Entity
	Name   string
}

// EventQueue collects the events of a world until someone drains it.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
