package input

import (
	"context"
	"time"
)

// Event is one raw event read from an input source. The payload depends on
// the identity's class: switches carry Pressed (and Repeat for hardware
// auto-repeat), axes carry Value, pointer surfaces carry X/Y and Pressed.
type Event struct {
	Identity EventIdentity
	Time     time.Time

	Pressed bool
	Repeat  bool
	Value   float64
	X, Y    float64
}

// Source supplies raw events from one input device. The event sequence is
// lazy, unbounded and non-restartable: Start begins delivery, the channel
// is closed when the context ends or the device goes away.
type Source interface {
	// Name identifies the device in logs and selection dialogs.
	Name() string

	// Identities lists the physical controls the device declares.
	Identities() []EventIdentity

	// AxisRange returns the numeric range of a continuous axis, with
	// ok=false for identities that are not known axes.
	AxisRange(id EventIdentity) (min, max float64, ok bool)

	// Events returns the raw event channel. Valid after Start.
	Events() <-chan Event

	// Start begins reading events. Delivery stops when ctx is done.
	Start(ctx context.Context) error

	// ReadKey blocks until the next key press and returns its platform
	// name (used when binding keys interactively).
	ReadKey(ctx context.Context) (string, error)

	// Close releases the device.
	Close() error
}
