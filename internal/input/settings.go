package input

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Setting names as they appear in keymap files.
const (
	settingNote          = "note"
	settingChannel       = "channel"
	settingVelocity      = "velocity"
	settingVelocityCoeff = "velocity_coeff"
	settingThresLow      = "thres_low"
	settingThresHigh     = "thres_high"

	// noteVaries marks a note computed from the event itself.
	noteVaries = "varies"

	// DefaultVelocityCoeff scales the raw axis velocity estimate.
	DefaultVelocityCoeff = 2.0
)

// Threshold is an axis threshold given either in absolute device units or
// as a percentage of the axis range.
type Threshold struct {
	Value   float64
	Percent bool
	Set     bool
}

// Resolve converts the threshold to absolute units for an axis with the
// given range. Unset thresholds resolve to the fallback.
func (t Threshold) Resolve(min, max, fallback float64) float64 {
	if !t.Set {
		return fallback
	}
	if t.Percent {
		return min + t.Value*(max-min)/100.0
	}
	return t.Value
}

// Settings is the resolved configuration for one event identity, built
// once per device session by layering the keymap defaults under the
// identity's own section.
type Settings struct {
	// Note is the configured note number. HasNote is false for
	// control-only bindings; NoteVaries means the note is computed from
	// the event itself instead of configured statically.
	Note       uint8
	HasNote    bool
	NoteVaries bool

	// Channel is 1-16.
	Channel uint8

	// Velocity is the statically configured velocity; HasVelocity is
	// false when velocity should be computed dynamically.
	Velocity    uint8
	HasVelocity bool

	// VelocityCoeff scales the estimated axis velocity.
	VelocityCoeff float64

	// ThresholdLow and ThresholdHigh bound the axis trigger window.
	ThresholdLow  Threshold
	ThresholdHigh Threshold
}

// ParseSettings builds Settings from a resolved section map. Malformed
// values are logged and fall back to their defaults; a bad entry never
// aborts the load.
func ParseSettings(values map[string]string, log *zap.Logger) Settings {
	s := Settings{
		Channel:       1,
		VelocityCoeff: DefaultVelocityCoeff,
	}

	if v, ok := values[settingNote]; ok {
		switch {
		case strings.EqualFold(strings.TrimSpace(v), noteVaries):
			s.NoteVaries = true
		default:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 && n <= 127 {
				s.Note = uint8(n)
				s.HasNote = true
			} else {
				log.Warn("invalid note setting", zap.String("value", v))
			}
		}
	}

	if v, ok := values[settingChannel]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 1 && n <= 16 {
			s.Channel = uint8(n)
		} else {
			log.Warn("invalid channel setting", zap.String("value", v))
		}
	}

	if v, ok := values[settingVelocity]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 && n <= 127 {
			s.Velocity = uint8(n)
			s.HasVelocity = true
		} else {
			log.Warn("invalid velocity setting", zap.String("value", v))
		}
	}

	if v, ok := values[settingVelocityCoeff]; ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f > 0 {
			s.VelocityCoeff = f
		} else {
			log.Warn("invalid velocity_coeff setting", zap.String("value", v))
		}
	}

	s.ThresholdLow = parseThreshold(values, settingThresLow, log)
	s.ThresholdHigh = parseThreshold(values, settingThresHigh, log)

	return s
}

func parseThreshold(values map[string]string, key string, log *zap.Logger) Threshold {
	v, ok := values[key]
	if !ok {
		return Threshold{}
	}
	v = strings.TrimSpace(v)
	percent := strings.HasSuffix(v, "%")
	if percent {
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn("invalid threshold setting", zap.String("key", key), zap.String("value", v))
		return Threshold{}
	}
	return Threshold{Value: f, Percent: percent, Set: true}
}
