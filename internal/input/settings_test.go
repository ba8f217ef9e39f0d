package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseSettings(t *testing.T) {
	s := ParseSettings(map[string]string{
		"note":           "60",
		"channel":        "10",
		"velocity":       "90",
		"velocity_coeff": "3.5",
		"thres_low":      "10%",
		"thres_high":     "800",
	}, zap.NewNop())

	assert.True(t, s.HasNote)
	assert.Equal(t, uint8(60), s.Note)
	assert.Equal(t, uint8(10), s.Channel)
	assert.True(t, s.HasVelocity)
	assert.Equal(t, uint8(90), s.Velocity)
	assert.Equal(t, 3.5, s.VelocityCoeff)
	assert.Equal(t, Threshold{Value: 10, Percent: true, Set: true}, s.ThresholdLow)
	assert.Equal(t, Threshold{Value: 800, Set: true}, s.ThresholdHigh)
}

func TestParseSettingsDefaults(t *testing.T) {
	s := ParseSettings(map[string]string{}, zap.NewNop())

	assert.False(t, s.HasNote)
	assert.False(t, s.NoteVaries)
	assert.Equal(t, uint8(1), s.Channel)
	assert.False(t, s.HasVelocity)
	assert.Equal(t, DefaultVelocityCoeff, s.VelocityCoeff)
	assert.False(t, s.ThresholdLow.Set)
	assert.False(t, s.ThresholdHigh.Set)
}

func TestParseSettingsVariesNote(t *testing.T) {
	s := ParseSettings(map[string]string{"note": "varies"}, zap.NewNop())
	assert.True(t, s.NoteVaries)
	assert.False(t, s.HasNote)
}

func TestParseSettingsMalformedValues(t *testing.T) {
	// malformed entries fall back to their defaults instead of failing
	s := ParseSettings(map[string]string{
		"note":           "banana",
		"channel":        "17",
		"velocity":       "200",
		"velocity_coeff": "-1",
		"thres_low":      "x%",
	}, zap.NewNop())

	assert.False(t, s.HasNote)
	assert.Equal(t, uint8(1), s.Channel)
	assert.False(t, s.HasVelocity)
	assert.Equal(t, DefaultVelocityCoeff, s.VelocityCoeff)
	assert.False(t, s.ThresholdLow.Set)
}
