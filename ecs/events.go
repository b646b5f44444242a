package ecs

type EventType string

const (
	EventEntityDestroyed EventType = "entity_destroyed"
	EventAnimTrigger     EventType = "anim_trigger"
	EventSpecReloaded    EventType = "spec_reloaded"
	EventSpecRejected    EventType = "spec_rejected"
)

// Event is a world notification. Data depends on Type: the trigger name for
// EventAnimTrigger, the prefab name for spec events.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a FIFO drained once per frame by whoever consumes events.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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
