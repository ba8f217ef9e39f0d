// Package input implements the event translation engine: it classifies raw
// input events from heterogeneous devices (keys, buttons, continuous axes,
// pointer surfaces) into note on/off triggers and routes the resulting MIDI
// messages to a player.
package input

import "fmt"

// EventClass distinguishes the kinds of physical controls.
type EventClass uint16

const (
	// ClassKey covers discrete switches: keyboard keys and buttons.
	ClassKey EventClass = 0x01
	// ClassAxis covers continuous absolute axes (joystick sticks, pedals).
	ClassAxis EventClass = 0x03
	// ClassPointer covers 2-D pointer/gesture surfaces.
	ClassPointer EventClass = 0x20
)

func (c EventClass) String() string {
	switch c {
	case ClassKey:
		return "key"
	case ClassAxis:
		return "axis"
	case ClassPointer:
		return "pointer"
	default:
		return fmt.Sprintf("class(%#x)", uint16(c))
	}
}

// EventIdentity identifies one physical control on one device: one key,
// one button or one axis. It is comparable and used as a map key.
type EventIdentity struct {
	Class EventClass
	Code  uint16
}

func (id EventIdentity) String() string {
	return fmt.Sprintf("%s/%d", id.Class, id.Code)
}
