package input

// KeyInterpreter maps a discrete switch directly to on/off. Hardware
// auto-repeat while the switch is held does not re-trigger: the transitions
// are edges, not levels.
type KeyInterpreter struct{}

// NewKeyInterpreter creates an interpreter for a key or button.
func NewKeyInterpreter() *KeyInterpreter {
	return &KeyInterpreter{}
}

func (k *KeyInterpreter) Interpret(ev Event) Classification {
	switch {
	case ev.Repeat:
		return Ignore
	case ev.Pressed:
		return On
	default:
		return Off
	}
}

func (k *KeyInterpreter) Velocity() (uint8, bool) { return 0, false }

func (k *KeyInterpreter) Note() (uint8, bool) { return 0, false }
