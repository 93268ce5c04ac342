// Package notify is the in-process event stream between the registry and
// the activity observer. Emission is fire-and-forget: a slow or absent
// subscriber drops events, never the other way around.
package notify

import (
	"sync"

	"satchel/internal/domain"
	"satchel/internal/ports"
)

const subscriberBuffer = 64

// Emitter fans events out to subscribers over bounded channels.
type Emitter struct {
	mu   sync.Mutex
	subs []chan domain.Event
}

var _ ports.Notifier = (*Emitter)(nil)

// NewEmitter creates an emitter with no subscribers.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe registers a new subscriber. Events emitted before the call are
// not replayed.
func (e *Emitter) Subscribe() <-chan domain.Event {
	ch := make(chan domain.Event, subscriberBuffer)

	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()

	return ch
}

// Emit delivers the event to every subscriber whose buffer has room.
// Full buffers drop the event; Emit never blocks.
func (e *Emitter) Emit(event domain.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
