package input

// Classification is the outcome of interpreting one raw event.
type Classification int

const (
	// Ignore means the event does not change the note state.
	Ignore Classification = iota
	// On means a note-on trigger just occurred.
	On
	// Off means a note-off trigger just occurred.
	Off
)

func (c Classification) String() string {
	switch c {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "ignore"
	}
}

// Interpreter classifies raw events for one event identity. Implementations
// keep whatever per-control state they need; an interpreter instance is
// owned by exactly one handler and never shared across identities.
type Interpreter interface {
	// Interpret classifies one event and updates internal state.
	Interpret(ev Event) Classification

	// Velocity returns the velocity of the most recent trigger, when the
	// interpreter was able to compute one.
	Velocity() (uint8, bool)

	// Note returns the note derived from the most recent event, for
	// interpreters that compute it (pointer surfaces). Only consulted
	// when the identity's note setting is "varies".
	Note() (uint8, bool)
}
