// Package midi defines the messages produced by the event translation
// engine and the players that realize them as sound.
package midi

import "fmt"

// Message is a discrete MIDI message ready to be sent to a player.
type Message interface {
	// Bytes returns the raw wire representation of the message.
	Bytes() []byte
}

// NoteOn starts a note. Channel is 1-16, Note and Velocity are 0-127.
type NoteOn struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
}

func (m NoteOn) Bytes() []byte {
	return []byte{
		0x90 | ((m.Channel - 1) & 0x0f),
		m.Note & 0x7f,
		m.Velocity & 0x7f,
	}
}

func (m NoteOn) String() string {
	return fmt.Sprintf("NoteOn(ch=%d note=%d vel=%d)", m.Channel, m.Note, m.Velocity)
}

// NoteOff stops a note. Channel is 1-16, Note and Velocity are 0-127.
type NoteOff struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
}

func (m NoteOff) Bytes() []byte {
	return []byte{
		0x80 | ((m.Channel - 1) & 0x0f),
		m.Note & 0x7f,
		m.Velocity & 0x7f,
	}
}

func (m NoteOff) String() string {
	return fmt.Sprintf("NoteOff(ch=%d note=%d vel=%d)", m.Channel, m.Note, m.Velocity)
}
