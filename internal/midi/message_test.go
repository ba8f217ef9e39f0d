package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteOnBytes(t *testing.T) {
	assert.Equal(t, []byte{0x90, 60, 100}, NoteOn{Channel: 1, Note: 60, Velocity: 100}.Bytes())
	assert.Equal(t, []byte{0x99, 38, 127}, NoteOn{Channel: 10, Note: 38, Velocity: 127}.Bytes())
	assert.Equal(t, []byte{0x9f, 0, 0}, NoteOn{Channel: 16}.Bytes())
}

func TestNoteOffBytes(t *testing.T) {
	assert.Equal(t, []byte{0x80, 60, 100}, NoteOff{Channel: 1, Note: 60, Velocity: 100}.Bytes())
	assert.Equal(t, []byte{0x89, 38, 0}, NoteOff{Channel: 10, Note: 38}.Bytes())
}

func TestMessageStrings(t *testing.T) {
	assert.Equal(t, "NoteOn(ch=10 note=38 vel=127)",
		NoteOn{Channel: 10, Note: 38, Velocity: 127}.String())
	assert.Equal(t, "NoteOff(ch=1 note=60 vel=0)",
		NoteOff{Channel: 1, Note: 60}.String())
}
