package cli

import (
	"sync"

	"github.com/hkhalid/butrack/internal/service"
)

// EventRelay is a service.Observer whose destination can be swapped at
// runtime: the fetch command points it at the spinner, the dashboard at
// its message loop. Events arriving with no sink attached are dropped.
type EventRelay struct {
	mu   sync.RWMutex
	sink func(service.Event)
}

func NewEventRelay() *EventRelay { return &EventRelay{} }

func (r *EventRelay) OnEvent(event service.Event) {
	r.mu.RLock()
	sink := r.sink
	r.mu.RUnlock()
	if sink != nil {
		sink(event)
	}
}

// SetSink routes subsequent events to fn. Pass nil to detach.
func (r *EventRelay) SetSink(fn func(service.Event)) {
	r.mu.Lock()
	r.sink = fn
	r.mu.Unlock()
}
