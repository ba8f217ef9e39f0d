package preset

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/config"
)

// settingNames are the MIDI settings a preset may carry.
var settingNames = [...]string{"channel", "program", "bank", "velocity"}

// Preset is a named, flattened note template: note numbers to labels plus
// default MIDI settings, with include chains already resolved. Presets are
// immutable after loading.
type Preset struct {
	Name     string
	NoteMap  map[int]string
	Settings map[string]int

	// Initial marks presets offered as a first-time starting template.
	Initial bool
}

// Library is the set of presets loaded from a preset library file.
type Library struct {
	presets map[string]*Preset
	log     *zap.Logger
}

// LoadLibrary resolves every preset in the configuration. Resolution
// errors (missing includes, inclusion cycles, missing filtered notes) are
// logged and yield partial presets; they never abort the load.
func LoadLibrary(cfg *config.File, log *zap.Logger) *Library {
	l := &Library{presets: make(map[string]*Preset), log: log}
	for _, section := range cfg.Sections() {
		l.presets[section.Name()] = l.load(cfg, section.Name())
	}
	return l
}

// Get returns a preset by name.
func (l *Library) Get(name string) (*Preset, bool) {
	p, ok := l.presets[name]
	return p, ok
}

// Names returns all preset names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.presets))
	for name := range l.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Initial returns the presets marked as first-time templates, sorted by
// name.
func (l *Library) Initial() []*Preset {
	var out []*Preset
	for _, name := range l.Names() {
		if p := l.presets[name]; p.Initial {
			out = append(out, p)
		}
	}
	return out
}

// load resolves one top-level preset.
func (l *Library) load(cfg *config.File, name string) *Preset {
	notes, settings := l.resolve(cfg, name, map[string]bool{})
	p := &Preset{
		Name:     name,
		NoteMap:  notes,
		Settings: settings,
	}
	if s := cfg.Section(name); s != nil {
		p.Initial = s.Bool("initial_template", false)
	}
	return p
}

// resolve flattens one preset and its include chain. The visited set is
// shared across the whole resolution of one top-level preset: a preset
// seen again, whether through a real cycle or a diamond, contributes
// nothing the second time, so resolution always terminates.
func (l *Library) resolve(cfg *config.File, name string, visited map[string]bool) (map[int]string, map[string]int) {
	notes := map[int]string{}
	settings := map[string]int{}

	if visited[name] {
		l.log.Error("presets include loop", zap.String("preset", name))
		return notes, settings
	}
	visited[name] = true

	section := cfg.Section(name)
	if section == nil {
		return notes, settings
	}

	if include := section.Value("include"); include != "" {
		for _, incItem := range strings.Split(include, ";") {
			incName := incItem
			noteFilter := ""
			if i := strings.Index(incItem, ":"); i >= 0 {
				incName, noteFilter = incItem[:i], incItem[i+1:]
			}
			incName = strings.TrimSpace(incName)
			if !cfg.HasSection(incName) {
				l.log.Error("included preset not found", zap.String("preset", incName))
				continue
			}

			incNotes, incSettings := l.resolve(cfg, incName, visited)
			for k, v := range incSettings {
				settings[k] = v
			}
			if noteFilter == "" {
				for n, label := range incNotes {
					notes[n] = label
				}
				continue
			}
			for _, n := range ParseIntegerList(noteFilter, l.log) {
				label, ok := incNotes[n]
				if !ok {
					l.log.Error("included preset note not found",
						zap.String("preset", incName), zap.Int("note", n))
					continue
				}
				notes[n] = label
			}
		}
	}

	// the preset's own note entries and settings layer on top of the
	// inherited ones; only integer keys in the note range are notes
	for key, value := range section.Values() {
		note, err := strconv.Atoi(key)
		if err != nil || note < 0 || note > 127 {
			continue
		}
		notes[note] = value
	}
	for _, setting := range settingNames {
		if !section.HasKey(setting) {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(section.Values()[setting]))
		if err != nil {
			l.log.Warn("invalid preset setting",
				zap.String("preset", name), zap.String("setting", setting))
			continue
		}
		settings[setting] = v
	}

	return notes, settings
}
