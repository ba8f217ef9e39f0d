package input

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// AxisInterpreter tracks one continuous absolute axis and detects threshold
// crossings. A rising crossing of the high threshold triggers a note on, a
// falling crossing of the low threshold a note off; the perceived velocity
// is estimated from the rate of change at the trigger.
type AxisInterpreter struct {
	log *zap.Logger

	min, max  float64
	axisRange float64
	thresLow  float64
	thresHigh float64
	coeff     float64

	lastValue float64
	lastTime  time.Time
	seen      bool

	// velocity of the most recent trigger, -1 when none was computable
	velocity int
}

// NewAxisInterpreter creates an interpreter for one axis with the given
// device range. Thresholds from the settings are resolved to absolute
// units once, here; an unset low threshold falls back to the range minimum
// and an unset high threshold to the maximum.
func NewAxisInterpreter(min, max float64, s Settings, log *zap.Logger) *AxisInterpreter {
	return &AxisInterpreter{
		log:       log,
		min:       min,
		max:       max,
		axisRange: max - min,
		thresLow:  s.ThresholdLow.Resolve(min, max, min),
		thresHigh: s.ThresholdHigh.Resolve(min, max, max),
		coeff:     s.VelocityCoeff,
		velocity:  -1,
	}
}

// Interpret classifies one axis sample. The first sample only records
// state and never triggers. A trigger requires the sample and the previous
// one to straddle the threshold, so repeated samples beyond a threshold
// fire only once per crossing.
func (a *AxisInterpreter) Interpret(ev Event) Classification {
	value, ts := ev.Value, ev.Time
	result := Ignore

	switch {
	case !a.seen:
		a.seen = true
	case value > a.lastValue:
		// rising
		if value > a.thresHigh && a.lastValue <= a.thresHigh {
			result = On
			a.computeVelocity(value, ts)
		}
	case value < a.lastValue:
		// falling
		if value < a.thresLow && a.lastValue >= a.thresLow {
			result = Off
			a.computeVelocity(value, ts)
		}
	}

	a.lastValue = value
	a.lastTime = ts
	return result
}

// computeVelocity estimates the velocity of the crossing that just fired.
// When the previous sample was already past the opposite threshold the
// start of the movement was likely missed and the velocity is treated as
// infinite; zero elapsed time gets the same treatment to avoid dividing
// by zero. The result is cached until the next trigger.
func (a *AxisInterpreter) computeVelocity(value float64, ts time.Time) {
	if a.axisRange == 0 {
		// degenerate axis, leave velocity undefined
		a.velocity = -1
		return
	}

	relChange := (value - a.lastValue) / a.axisRange
	infinite := false
	var velocity float64

	switch {
	case relChange > 0 && a.lastValue < a.thresLow:
		// the low value could be collected before the move started
		infinite = true
	case relChange < 0 && a.lastValue > a.thresHigh:
		// the high value could be collected before the move started
		infinite = true
	default:
		elapsed := ts.Sub(a.lastTime).Seconds()
		if elapsed <= 0 {
			infinite = true
		} else {
			velocity = math.Abs(relChange / elapsed)
		}
	}

	if infinite {
		a.velocity = 127
		a.log.Debug("axis velocity saturated")
		return
	}

	a.log.Debug("unscaled axis velocity", zap.Float64("velocity", velocity))
	scaled := int(velocity * a.coeff)
	switch {
	case scaled < 0:
		a.velocity = 0
	case scaled > 127:
		a.velocity = 127
	default:
		a.velocity = scaled
	}
}

// Velocity returns the velocity of the most recent trigger. It stays valid
// until overwritten by the next trigger; ok is false when no trigger fired
// yet or the axis range is degenerate.
func (a *AxisInterpreter) Velocity() (uint8, bool) {
	if a.velocity < 0 {
		return 0, false
	}
	return uint8(a.velocity), true
}

// Note is never computed for an axis; the note is always configured.
func (a *AxisInterpreter) Note() (uint8, bool) { return 0, false }
