package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/config"
)

// ErrUnknownSourceType is returned when a config section does not describe
// a known input device type.
var ErrUnknownSourceType = errors.New("not a known input device config")

// SourceFactory creates input sources from one configuration section. A
// factory may yield several sources (one section can match several
// devices) or none at all.
type SourceFactory func(cfg *config.File, section string, log *zap.Logger) ([]Source, error)

var sourceFactories = map[string]SourceFactory{}

// RegisterSourceType registers a device-type factory. Adapters register
// themselves from init, the way MIDI drivers do.
func RegisterSourceType(name string, factory SourceFactory) {
	sourceFactories[name] = factory
}

// SourceEntry is one opened input source plus its configuration context.
type SourceEntry struct {
	// ID correlates the source's log entries across the router.
	ID string

	Source Source

	// KeymapPath is the keymap file configured for the source, empty
	// when the section does not name one.
	KeymapPath string
}

func openSection(cfg *config.File, section string, log *zap.Logger) ([]SourceEntry, error) {
	s := cfg.Section(section)
	if s == nil {
		return nil, fmt.Errorf("no such config section: %q", section)
	}

	sourceType := section
	if i := strings.Index(section, ":"); i >= 0 {
		sourceType = section[:i]
	}
	factory, ok := sourceFactories[sourceType]
	if !ok {
		return nil, fmt.Errorf("[%s]: %w", section, ErrUnknownSourceType)
	}

	sources, err := factory(cfg, section, log)
	if err != nil {
		return nil, err
	}
	entries := make([]SourceEntry, 0, len(sources))
	for _, src := range sources {
		entries = append(entries, SourceEntry{
			ID:         uuid.New().String(),
			Source:     src,
			KeymapPath: s.Value("keymap"),
		})
	}
	return entries, nil
}

// OpenSources creates input sources from configuration. With a non-empty
// section name only that section is tried; otherwise every enabled section
// describing a known device type contributes. Sections that fail to load
// are logged and skipped.
func OpenSources(cfg *config.File, section string, log *zap.Logger) []SourceEntry {
	if section != "" {
		entries, err := openSection(cfg, section, log)
		if err != nil {
			log.Info("cannot load input device", zap.Error(err))
			return nil
		}
		return entries
	}

	var all []SourceEntry
	for _, s := range cfg.Sections() {
		if s.Bool("disabled", false) {
			continue
		}
		entries, err := openSection(cfg, s.Name(), log)
		if errors.Is(err, ErrUnknownSourceType) {
			continue
		}
		if err != nil {
			log.Warn("cannot load input device",
				zap.String("section", s.Name()), zap.Error(err))
			continue
		}
		all = append(all, entries...)
	}
	return all
}
