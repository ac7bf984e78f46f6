package protocol

import (
	"math"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// RingControl returns the CC number driving the given ring.
func (c Config) RingControl(ring contracts.RingType) uint8 {
	if ring == contracts.RingSpinner {
		return c.SpinnerControl
	}
	return c.PositionControl
}

// RingValue maps a percentage in [0,100] to the device value of a ring.
// Out-of-range percentages are silently clamped. The clamp happens twice,
// on the percentage and again on the position unit, because intermediate
// rounding can push the position one unit outside bounds. Spinner values
// sit above SpinnerOffset; position values are linear from zero.
func (c Config) RingValue(ring contracts.RingType, percent float64) uint8 {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	pos := math.Round(percent * float64(c.MaxPosition) / 100.0)
	if pos < 0 {
		pos = 0
	} else if pos > float64(c.MaxPosition) {
		pos = float64(c.MaxPosition)
	}

	if ring == contracts.RingSpinner {
		return c.SpinnerOffset + uint8(pos)
	}
	return uint8(pos)
}

// VUValue maps a level to the VU meter's device range. Inputs above 1.0 are
// treated as percentages (0-100); inputs up to 1.0 are treated as fractions.
// The dual-mode convention is preserved from the device's stock tooling.
func (c Config) VUValue(level float64) uint8 {
	var value float64
	if level > 1.0 {
		value = level / 100.0 * float64(c.VUMax)
	} else {
		value = level * float64(c.VUMax)
	}
	if value < 0 {
		value = 0
	} else if value > float64(c.VUMax) {
		value = float64(c.VUMax)
	}
	return uint8(value)
}
