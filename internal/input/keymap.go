package input

import (
	"strings"

	evdev "github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/config"
)

// PointerSection is the keymap section name bound to a device's pointer
// surface.
const PointerSection = "POINTER"

// ResolveIdentity maps a keymap section name to an event identity. Key and
// button names use the platform's input code tables (KEY_A, BTN_SOUTH),
// axis names the absolute axis table (ABS_X); the POINTER name addresses a
// device's gesture surface.
func ResolveIdentity(name string) (EventIdentity, bool) {
	switch {
	case strings.HasPrefix(name, "KEY_") || strings.HasPrefix(name, "BTN_"):
		code, ok := evdev.KEYFromString[name]
		if !ok {
			return EventIdentity{}, false
		}
		return EventIdentity{Class: ClassKey, Code: uint16(code)}, true
	case strings.HasPrefix(name, "ABS_"):
		code, ok := evdev.ABSFromString[name]
		if !ok {
			return EventIdentity{}, false
		}
		return EventIdentity{Class: ClassAxis, Code: uint16(code)}, true
	case name == PointerSection:
		return EventIdentity{Class: ClassPointer}, true
	default:
		return EventIdentity{}, false
	}
}

// LoadKeymap builds the identity-to-handler mapping for one device from a
// keymap configuration. Each section names one physical control; the
// section name prefix selects the interpreter variant. Sections with
// unknown names are logged and skipped, they never abort the rest of the
// load. Axis sections additionally need the device to declare the axis
// range; axes the device does not report are skipped too.
func LoadKeymap(cfg *config.File, src Source, log *zap.Logger) map[EventIdentity]*Handler {
	handlers := make(map[EventIdentity]*Handler)

	for _, section := range cfg.Sections() {
		name := section.Name()
		id, ok := ResolveIdentity(name)
		if !ok {
			if strings.HasPrefix(name, "KEY_") || strings.HasPrefix(name, "BTN_") ||
				strings.HasPrefix(name, "ABS_") {
				log.Warn("unknown input name", zap.String("section", name))
			}
			// anything else is not a binding section
			continue
		}

		settings := ParseSettings(section.Resolved(), log)

		var interp Interpreter
		switch id.Class {
		case ClassKey:
			interp = NewKeyInterpreter()
		case ClassAxis:
			min, max, ok := src.AxisRange(id)
			if !ok {
				log.Error("cannot retrieve axis range", zap.String("section", name))
				continue
			}
			interp = NewAxisInterpreter(min, max, settings, log)
		case ClassPointer:
			interp = NewPointerInterpreter(nil)
		}

		handlers[id] = NewHandler(id, settings, interp, log)
	}

	return handlers
}
