package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyInterpreterEdgeSemantics(t *testing.T) {
	k := NewKeyInterpreter()

	assert.Equal(t, On, k.Interpret(Event{Pressed: true}))
	// hardware auto-repeat while held must not re-trigger
	assert.Equal(t, Ignore, k.Interpret(Event{Pressed: true, Repeat: true}))
	assert.Equal(t, Ignore, k.Interpret(Event{Pressed: true, Repeat: true}))
	assert.Equal(t, Off, k.Interpret(Event{Pressed: false}))

	_, ok := k.Velocity()
	assert.False(t, ok)
	_, ok = k.Note()
	assert.False(t, ok)
}

func TestPointerInterpreterGesture(t *testing.T) {
	p := NewPointerInterpreter(BandNoteMapper(60, 40))

	assert.Equal(t, On, p.Interpret(Event{Pressed: true, X: 85}))
	note, ok := p.Note()
	assert.True(t, ok)
	assert.Equal(t, uint8(62), note)

	// dragging while pressed does not re-trigger and keeps the press note
	assert.Equal(t, Ignore, p.Interpret(Event{Pressed: true, X: 200}))
	note, _ = p.Note()
	assert.Equal(t, uint8(62), note)

	assert.Equal(t, Off, p.Interpret(Event{Pressed: false, X: 200}))
	// a release without a preceding press is ignored
	assert.Equal(t, Ignore, p.Interpret(Event{Pressed: false}))
}

func TestBandNoteMapperMonotonic(t *testing.T) {
	m := BandNoteMapper(60, 10)

	last := uint8(0)
	for x := 0.0; x < 500; x += 7 {
		n := m(x, 0)
		assert.GreaterOrEqual(t, n, last)
		last = n
	}
	// clamped at the top of the note range
	assert.Equal(t, uint8(127), m(1e6, 0))
}
