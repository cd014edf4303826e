// Package event provides an in-process change notification stream.
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Listener receives published events.
type Listener[E any] func(E)

// Subscription identifies a listener registered on a bus.
type Subscription struct {
	ID uuid.UUID
}

// Bus delivers events synchronously to its listeners in subscription order.
// Buses are safe for concurrent use. Listeners may subscribe and unsubscribe
// from within a delivery; the change takes effect on the next publish.
type Bus[E any] struct {
	lock      sync.RWMutex
	order     []uuid.UUID
	listeners map[uuid.UUID]Listener[E]
}

// NewBus returns an empty bus.
func NewBus[E any]() *Bus[E] {
	return &Bus[E]{listeners: map[uuid.UUID]Listener[E]{}}
}

// Subscribe registers the listener.
func (bus *Bus[E]) Subscribe(listener Listener[E]) (sub Subscription) {
	sub.ID = uuid.New()
	bus.lock.Lock()
	defer bus.lock.Unlock()
	bus.listeners[sub.ID] = listener
	bus.order = append(bus.order, sub.ID)
	return
}

// Unsubscribe removes the subscription's listener, returning true if it was
// registered.
func (bus *Bus[E]) Unsubscribe(sub Subscription) (extant bool) {
	bus.lock.Lock()
	defer bus.lock.Unlock()
	_, extant = bus.listeners[sub.ID]
	if !extant {
		return
	}
	delete(bus.listeners, sub.ID)
	for i, id := range bus.order {
		if id == sub.ID {
			bus.order = append(bus.order[:i:i], bus.order[i+1:]...)
			break
		}
	}
	return
}

// Publish delivers the event to every listener registered when it is called.
func (bus *Bus[E]) Publish(e E) {
	bus.lock.RLock()
	listeners := make([]Listener[E], 0, len(bus.order))
	for _, id := range bus.order {
		listeners = append(listeners, bus.listeners[id])
	}
	bus.lock.RUnlock()
	for _, listener := range listeners {
		listener(e)
	}
}

// Len returns the number of subscriptions.
func (bus *Bus[E]) Len() int {
	bus.lock.RLock()
	defer bus.lock.RUnlock()
	return len(bus.listeners)
}
