package events

import "sync"

// Handler processes specific event types
// Collaborators (renderers, audio, status text) implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during Dispatch, on the dispatching goroutine
	HandleEvent(event TimerEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this at subscription time
	EventTypes() []EventType
}

// SubscriptionID identifies a subscription for Unsubscribe
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Router dispatches event batches to subscribed handlers
//
// Architecture:
//   - Single dispatching goroutine (the orchestrator's owner)
//   - Multiple handlers can subscribe to the same event type
//   - Events of a batch are delivered in batch order
//   - Handlers of one event are invoked in subscription order
//   - Subscribe/Unsubscribe during dispatch take effect on the next event
type Router struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[EventType][]subscription
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		handlers: make(map[EventType][]subscription),
	}
}

// Subscribe adds a handler for its declared event types
func (r *Router) Subscribe(handler Handler) SubscriptionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], subscription{id: id, handler: handler})
	}
	return id
}

// Unsubscribe removes a subscription from every event type, false if unknown
func (r *Router) Unsubscribe(id SubscriptionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for t, subs := range r.handlers {
		kept := subs[:0:0]
		for _, s := range subs {
			if s.id == id {
				found = true
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			delete(r.handlers, t)
		} else {
			r.handlers[t] = kept
		}
	}
	return found
}

// Dispatch routes a batch of events in order
func (r *Router) Dispatch(batch []TimerEvent) {
	for _, ev := range batch {
		// Snapshot per event so handlers may unsubscribe while being called
		r.mu.RLock()
		subs := r.handlers[ev.Type]
		r.mu.RUnlock()

		for _, s := range subs {
			s.handler.HandleEvent(ev)
		}
	}
}

// HandlerCount returns the number of handlers subscribed to the given type
func (r *Router) HandlerCount(t EventType) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[t])
}
