// Package event provides a small synchronous event dispatcher.
//
// Stores fire events after state changes; the presentation layer listens
// and refreshes. Stores never import the UI — the bus is the only channel
// between them.
//
//	bus := event.NewBus()
//	bus.Listen("cart.updated", func(payload interface{}) { hub.Refresh() })
//	bus.Fire("cart.updated", snapshot)
package event

import "sync"

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

// Bus dispatches named events to registered handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus returns an empty dispatcher.
func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners, in
// registration order.
func (b *Bus) Fire(event string, payload interface{}) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}

// Flush removes all listeners (useful in tests).
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}

// Default is the process-wide bus wired up by internal/server.
var Default = NewBus()

// Listen registers a handler on the default bus.
func Listen(event string, handler Handler) { Default.Listen(event, handler) }

// Fire dispatches on the default bus.
func Fire(event string, payload interface{}) { Default.Fire(event, payload) }

// Flush clears the default bus.
func Flush() { Default.Flush() }
