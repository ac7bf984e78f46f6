// Package protocol holds the pure wire-protocol knowledge of the Mixtrack
// Platinum FX: the logical-control address tables, the nibble display
// encoding and the ring/VU value ranges. Nothing here performs I/O.
package protocol

// Config carries the wire-level constants of the device. The defaults match
// the official Mixxx controller mapping plus values confirmed by USB traffic
// analysis; they are exposed as a struct so an embedder with reflashed
// firmware can still adjust them.
type Config struct {
	// ChannelOffset is added to deck-1 to reach the extended LED channels.
	ChannelOffset uint8

	VelocityOn uint8
	// VelocityOff is 1, not 0: the firmware distinguishes "off" from "unlit"
	// and expects velocity 1 for a clean off state.
	VelocityOff uint8

	SpinnerControl  uint8 // CC number of the red spinner ring.
	PositionControl uint8 // CC number of the white position ring.
	SpinnerOffset   uint8 // Device value of spinner position zero.
	MaxPosition     uint8 // Largest ring position unit.

	VUControl uint8 // CC number of the per-deck VU meter.
	VUMax     uint8 // Largest VU device value.

	BPMDisplayType  byte
	TimeDisplayType byte
	RateDisplayType byte
}

// DefaultConfig returns the stock Mixtrack Platinum FX constants.
func DefaultConfig() Config {
	return Config{
		ChannelOffset:   4,
		VelocityOn:      127,
		VelocityOff:     1,
		SpinnerControl:  6,
		PositionControl: 63,
		SpinnerOffset:   64,
		MaxPosition:     52,
		VUControl:       31,
		VUMax:           90,
		BPMDisplayType:  1,
		TimeDisplayType: 4,
		RateDisplayType: 2,
	}
}
