package midi

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/config"
)

// ErrUnknownPlayerType is returned when a config section does not describe
// a known player type.
var ErrUnknownPlayerType = errors.New("not a known player config")

// newPlayerFromSection creates a player from a single configuration
// section. The player type is the section name up to the first colon:
// "port" or "port:usb_synth" select the MIDI port player, "null" the
// discarding player.
func newPlayerFromSection(cfg *config.File, section string, log *zap.Logger) (Player, error) {
	s := cfg.Section(section)
	if s == nil {
		return nil, fmt.Errorf("no such config section: %q", section)
	}

	playerType := section
	if i := strings.Index(section, ":"); i >= 0 {
		playerType = section[:i]
	}

	switch playerType {
	case "port":
		return NewPortPlayer(s.Value("port"), log)
	case "null":
		return NewNullPlayer(log), nil
	default:
		return nil, fmt.Errorf("[%s]: %w", section, ErrUnknownPlayerType)
	}
}

// NewPlayer creates a MIDI player from configuration. With a non-empty
// section name only that section is tried; otherwise the first enabled
// section describing a known player type wins. A nil player with a nil
// error means no player is configured.
func NewPlayer(cfg *config.File, section string, log *zap.Logger) (Player, error) {
	if section != "" {
		return newPlayerFromSection(cfg, section, log)
	}
	for _, s := range cfg.Sections() {
		if s.Bool("disabled", false) {
			continue
		}
		player, err := newPlayerFromSection(cfg, s.Name(), log)
		if errors.Is(err, ErrUnknownPlayerType) {
			continue
		}
		if err != nil {
			log.Warn("cannot load player", zap.String("section", s.Name()), zap.Error(err))
			continue
		}
		return player, nil
	}
	return nil, nil
}
