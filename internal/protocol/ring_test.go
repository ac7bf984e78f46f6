package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

func TestSpinnerRingClamping(t *testing.T) {
	cfg := DefaultConfig()

	cases := map[float64]uint8{
		-10: 64,  // clamped to 0%
		0:   64,  // offset floor
		50:  90,  // round(50*52/100)=26, 64+26
		100: 116, // offset + max position
		150: 116, // clamped to 100%
	}
	for percent, want := range cases {
		assert.Equal(t, want, cfg.RingValue(contracts.RingSpinner, percent), "%.0f%%", percent)
	}
}

func TestPositionRingClamping(t *testing.T) {
	cfg := DefaultConfig()

	cases := map[float64]uint8{
		-5:  0,
		0:   0,
		50:  26,
		100: 52,
		130: 52,
	}
	for percent, want := range cases {
		assert.Equal(t, want, cfg.RingValue(contracts.RingPosition, percent), "%.0f%%", percent)
	}
}

func TestRingControlNumbers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, uint8(6), cfg.RingControl(contracts.RingSpinner))
	assert.Equal(t, uint8(63), cfg.RingControl(contracts.RingPosition))
}

// The VU meter accepts either a 0.0-1.0 fraction or a 0-100 percentage;
// anything above 1.0 is read on the percentage scale.
func TestVUValueDualMode(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, uint8(45), cfg.VUValue(0.5))
	assert.Equal(t, uint8(45), cfg.VUValue(50))
	assert.Equal(t, uint8(90), cfg.VUValue(1.0))
	assert.Equal(t, uint8(90), cfg.VUValue(100))
	assert.Equal(t, uint8(90), cfg.VUValue(400), "over-range clamps to VUMax")
	assert.Equal(t, uint8(0), cfg.VUValue(0))
	assert.Equal(t, uint8(0), cfg.VUValue(-3))
}
