package input

import (
	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/midi"
)

// Handler translates raw events for one event identity into MIDI messages.
type Handler struct {
	identity EventIdentity
	settings Settings
	interp   Interpreter
	log      *zap.Logger
}

// NewHandler binds an interpreter and resolved settings to one identity.
func NewHandler(id EventIdentity, settings Settings, interp Interpreter, log *zap.Logger) *Handler {
	return &Handler{identity: id, settings: settings, interp: interp, log: log}
}

// Identity returns the identity the handler is bound to.
func (h *Handler) Identity() EventIdentity { return h.identity }

// Translate interprets one event and, for a trigger, builds the resulting
// message. Bindings without a note setting are control-only and never emit.
func (h *Handler) Translate(ev Event) (midi.Message, bool) {
	result := h.interp.Interpret(ev)
	if result == Ignore {
		return nil, false
	}
	if !h.settings.HasNote && !h.settings.NoteVaries {
		return nil, false
	}

	note := h.settings.Note
	if h.settings.NoteVaries {
		n, ok := h.interp.Note()
		if !ok {
			return nil, false
		}
		note = n
	}

	velocity := h.velocity()
	channel := h.settings.Channel

	switch result {
	case On:
		h.log.Debug("note on",
			zap.Uint8("channel", channel), zap.Uint8("note", note), zap.Uint8("velocity", velocity))
		return midi.NoteOn{Channel: channel, Note: note, Velocity: velocity}, true
	case Off:
		h.log.Debug("note off",
			zap.Uint8("channel", channel), zap.Uint8("note", note), zap.Uint8("velocity", velocity))
		return midi.NoteOff{Channel: channel, Note: note, Velocity: velocity}, true
	}
	return nil, false
}

// velocity picks the velocity for the current trigger: the interpreter's
// computed value when available, then the statically configured one, then
// the maximum.
func (h *Handler) velocity() uint8 {
	if v, ok := h.interp.Velocity(); ok {
		return v
	}
	if h.settings.HasVelocity {
		return h.settings.Velocity
	}
	return 127
}
