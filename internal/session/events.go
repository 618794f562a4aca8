package session

import (
	"sync"

	"wavelink/internal/game"
)

// Event is a room state change published for passive observers (the SSE
// spectator stream). The snapshot is the spectator view: the target stays
// hidden until the reveal.
type Event struct {
	RoomID   string
	Snapshot game.Snapshot
}

// EventBus manages event subscriptions per room
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe subscribes to events for a room
func (eb *EventBus) Subscribe(roomID string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 10)
	eb.subscribers[roomID] = append(eb.subscribers[roomID], ch)
	return ch
}

// Unsubscribe removes a subscription
func (eb *EventBus) Unsubscribe(roomID string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[roomID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[roomID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
}

// Publish publishes an event to all subscribers of the room
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[event.RoomID] {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}
