package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/midi"
)

func TestHandlerSwitchTranslation(t *testing.T) {
	id := EventIdentity{Class: ClassKey, Code: 30}
	settings := ParseSettings(map[string]string{
		"note": "60", "channel": "2", "velocity": "100",
	}, zap.NewNop())
	h := NewHandler(id, settings, NewKeyInterpreter(), zap.NewNop())

	msg, ok := h.Translate(Event{Identity: id, Pressed: true})
	require.True(t, ok)
	assert.Equal(t, midi.NoteOn{Channel: 2, Note: 60, Velocity: 100}, msg)

	msg, ok = h.Translate(Event{Identity: id, Pressed: false})
	require.True(t, ok)
	assert.Equal(t, midi.NoteOff{Channel: 2, Note: 60, Velocity: 100}, msg)
}

func TestHandlerIgnoreEmitsNothing(t *testing.T) {
	id := EventIdentity{Class: ClassKey, Code: 30}
	settings := ParseSettings(map[string]string{"note": "60"}, zap.NewNop())
	h := NewHandler(id, settings, NewKeyInterpreter(), zap.NewNop())

	_, ok := h.Translate(Event{Identity: id, Pressed: true, Repeat: true})
	assert.False(t, ok)
}

func TestHandlerControlOnlyBinding(t *testing.T) {
	// a binding without a note setting never emits messages
	id := EventIdentity{Class: ClassKey, Code: 30}
	settings := ParseSettings(map[string]string{"channel": "2"}, zap.NewNop())
	h := NewHandler(id, settings, NewKeyInterpreter(), zap.NewNop())

	_, ok := h.Translate(Event{Identity: id, Pressed: true})
	assert.False(t, ok)
}

func TestHandlerDefaultVelocityChannel(t *testing.T) {
	id := EventIdentity{Class: ClassKey, Code: 30}
	settings := ParseSettings(map[string]string{"note": "60"}, zap.NewNop())
	h := NewHandler(id, settings, NewKeyInterpreter(), zap.NewNop())

	msg, ok := h.Translate(Event{Identity: id, Pressed: true})
	require.True(t, ok)
	assert.Equal(t, midi.NoteOn{Channel: 1, Note: 60, Velocity: 127}, msg)
}

func TestHandlerComputedVelocityWins(t *testing.T) {
	id := EventIdentity{Class: ClassAxis, Code: 1}
	settings := ParseSettings(map[string]string{
		"note": "38", "velocity": "64", "thres_low": "100", "thres_high": "900",
	}, zap.NewNop())
	interp := NewAxisInterpreter(0, 1000, settings, zap.NewNop())
	h := NewHandler(id, settings, interp, zap.NewNop())

	t0 := time.Now()
	_, ok := h.Translate(axisEvent(0, t0))
	assert.False(t, ok)

	msg, ok := h.Translate(axisEvent(950, t0.Add(10*time.Millisecond)))
	require.True(t, ok)
	// missed-start condition saturates the computed velocity, overriding
	// the statically configured one
	assert.Equal(t, midi.NoteOn{Channel: 1, Note: 38, Velocity: 127}, msg)
}

func TestHandlerStaticVelocityOnZeroRange(t *testing.T) {
	id := EventIdentity{Class: ClassAxis, Code: 1}
	settings := ParseSettings(map[string]string{
		"note": "38", "velocity": "64", "thres_low": "2", "thres_high": "4",
	}, zap.NewNop())
	interp := NewAxisInterpreter(5, 5, settings, zap.NewNop())
	h := NewHandler(id, settings, interp, zap.NewNop())

	t0 := time.Now()
	h.Translate(axisEvent(1, t0))
	msg, ok := h.Translate(axisEvent(10, t0.Add(time.Millisecond)))
	require.True(t, ok)
	// degenerate axis range: fall back to the configured velocity
	assert.Equal(t, midi.NoteOn{Channel: 1, Note: 38, Velocity: 64}, msg)
}

func TestHandlerVariesNote(t *testing.T) {
	id := EventIdentity{Class: ClassPointer}
	settings := ParseSettings(map[string]string{
		"note": "varies", "channel": "3", "velocity": "80",
	}, zap.NewNop())
	h := NewHandler(id, settings, NewPointerInterpreter(BandNoteMapper(60, 40)), zap.NewNop())

	msg, ok := h.Translate(Event{Identity: id, Pressed: true, X: 45})
	require.True(t, ok)
	assert.Equal(t, midi.NoteOn{Channel: 3, Note: 61, Velocity: 80}, msg)

	msg, ok = h.Translate(Event{Identity: id, Pressed: false})
	require.True(t, ok)
	assert.Equal(t, midi.NoteOff{Channel: 3, Note: 61, Velocity: 80}, msg)
}
