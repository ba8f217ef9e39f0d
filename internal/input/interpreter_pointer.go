package input

// NoteMapper converts a pointer position to a note number. Mappings must
// be deterministic and monotonic in the position.
type NoteMapper func(x, y float64) uint8

// BandNoteMapper maps the horizontal position to consecutive notes in
// bands of the given width, starting at base. The result is clamped to
// the 0-127 note range.
func BandNoteMapper(base uint8, bandWidth float64) NoteMapper {
	return func(x, y float64) uint8 {
		if bandWidth <= 0 {
			return base
		}
		n := int(base) + int(x/bandWidth)
		switch {
		case n < 0:
			return 0
		case n > 127:
			return 127
		default:
			return uint8(n)
		}
	}
}

// PointerInterpreter turns a press/drag/release gesture over a 2-D surface
// into note triggers. The note is derived from the surface position at
// press time; dragging while pressed does not re-trigger.
type PointerInterpreter struct {
	mapper  NoteMapper
	pressed bool
	note    uint8
	hasNote bool
}

// NewPointerInterpreter creates a pointer interpreter. With a nil mapper
// the default band mapper is used (one octave starting at middle C over
// bands of 40 units).
func NewPointerInterpreter(mapper NoteMapper) *PointerInterpreter {
	if mapper == nil {
		mapper = BandNoteMapper(60, 40)
	}
	return &PointerInterpreter{mapper: mapper}
}

func (p *PointerInterpreter) Interpret(ev Event) Classification {
	switch {
	case ev.Pressed && !p.pressed:
		p.pressed = true
		p.note = p.mapper(ev.X, ev.Y)
		p.hasNote = true
		return On
	case !ev.Pressed && p.pressed:
		p.pressed = false
		return Off
	default:
		// drag, or a release without a preceding press
		return Ignore
	}
}

func (p *PointerInterpreter) Velocity() (uint8, bool) { return 0, false }

// Note returns the note at the most recent press position.
func (p *PointerInterpreter) Note() (uint8, bool) {
	return p.note, p.hasNote
}
