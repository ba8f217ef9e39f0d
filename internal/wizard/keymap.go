// Package wizard implements the interactive keymap authoring flow: binding
// physical keys to preset notes and persisting the result as a keymap file.
package wizard

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Jajcus/badumtss-machine/internal/config"
	"github.com/Jajcus/badumtss-machine/internal/preset"
)

// Keymap is the mutable keymap being authored. Each binding is one section
// named after the physical key, with at least a note setting; shared
// settings live in the defaults section.
type Keymap struct {
	file  *config.File
	saved bool
}

// OpenKeymap loads a keymap file, or starts an empty keymap when the file
// does not exist yet.
func OpenKeymap(path string) (*Keymap, error) {
	_, statErr := os.Stat(path)
	file, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return &Keymap{file: file, saved: statErr == nil}, nil
}

// Saved reports whether the keymap matches its persisted state.
func (k *Keymap) Saved() bool { return k.saved }

// Defaults returns the shared settings block.
func (k *Keymap) Defaults() map[string]string {
	return k.file.Defaults()
}

// SetDefault sets one shared setting.
func (k *Keymap) SetDefault(name, value string) {
	k.file.SetKey(config.DefaultsSection, name, value)
	k.saved = false
}

// Bind assigns a note to a physical key, creating its section as needed.
// Channel and velocity from the preset settings are written as per-key
// overrides only where they differ from the current defaults; when the
// preset carries no value for a setting any stale override is removed.
func (k *Keymap) Bind(key string, note int, p *preset.Preset) {
	k.file.SetKey(key, "note", strconv.Itoa(note))
	k.saved = false
	if p == nil {
		return
	}
	defaults := k.Defaults()
	for _, setting := range []string{"channel", "velocity"} {
		value, ok := p.Settings[setting]
		if !ok {
			k.file.DeleteKey(key, setting)
			continue
		}
		if d, present := defaults[setting]; !present || d != strconv.Itoa(value) {
			k.file.SetKey(key, setting, strconv.Itoa(value))
		} else {
			k.file.DeleteKey(key, setting)
		}
	}
}

// Unbind removes a binding.
func (k *Keymap) Unbind(key string) {
	k.file.DeleteSection(key)
	k.saved = false
}

// ApplySettings copies a preset's settings into the defaults section.
func (k *Keymap) ApplySettings(p *preset.Preset) {
	for name, value := range p.Settings {
		k.file.SetKey(config.DefaultsSection, name, strconv.Itoa(value))
	}
	k.saved = false
}

// Binding describes one current binding for display.
type Binding struct {
	Key   string
	Note  int
	Descr string
}

// Bindings lists the current bindings sorted by key name. Note labels come
// from the current preset, falling back to the full preset; per-key
// settings differing from the defaults are annotated.
func (k *Keymap) Bindings(current, full *preset.Preset) []Binding {
	defaults := k.Defaults()
	var keys []string
	for _, s := range k.file.Sections() {
		keys = append(keys, s.Name())
	}
	sort.Strings(keys)

	out := make([]Binding, 0, len(keys))
	for _, key := range keys {
		section := k.file.Section(key)
		values := section.Values()

		note, err := strconv.Atoi(strings.TrimSpace(values["note"]))
		descr := "unknown"
		if err == nil {
			if current != nil {
				if label, ok := current.NoteMap[note]; ok {
					descr = label
				}
			}
			if descr == "unknown" && full != nil {
				if label, ok := full.NoteMap[note]; ok {
					descr = label
				}
			}
		} else {
			note = -1
		}

		var modifiers []string
		for _, name := range section.Keys() {
			if name == "note" {
				continue
			}
			if defaults[name] == values[name] {
				continue
			}
			modifiers = append(modifiers, fmt.Sprintf("%s=%s", name, values[name]))
		}
		if len(modifiers) > 0 {
			descr += " (" + strings.Join(modifiers, ",") + ")"
		}

		out = append(out, Binding{Key: key, Note: note, Descr: descr})
	}
	return out
}

// Save persists the keymap to the given path.
func (k *Keymap) Save(path string) error {
	if err := k.file.SaveTo(path); err != nil {
		return err
	}
	k.saved = true
	return nil
}
