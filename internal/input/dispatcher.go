package input

import (
	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/midi"
)

// Dispatcher routes raw events from one input source to the matching
// handler by event identity. Identities with no handler are silently
// dropped: most physical controls are expected to be unbound.
type Dispatcher struct {
	handlers map[EventIdentity]*Handler
	log      *zap.Logger
}

// NewDispatcher creates a dispatcher over a handler mapping, typically the
// output of LoadKeymap.
func NewDispatcher(handlers map[EventIdentity]*Handler, log *zap.Logger) *Dispatcher {
	if handlers == nil {
		handlers = make(map[EventIdentity]*Handler)
	}
	return &Dispatcher{handlers: handlers, log: log}
}

// Len returns the number of bound identities.
func (d *Dispatcher) Len() int { return len(d.handlers) }

// Dispatch translates one raw event. ok is false when the identity is
// unbound or the handler classified the event as ignore.
func (d *Dispatcher) Dispatch(ev Event) (midi.Message, bool) {
	handler, found := d.handlers[ev.Identity]
	if !found {
		return nil, false
	}
	return handler.Translate(ev)
}
