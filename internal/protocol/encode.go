package protocol

import "math"

// maxDisplayMagnitude is the largest magnitude the 8-nibble display encoding
// can carry before the sign sentinel overwrites the high nibble.
const maxDisplayMagnitude = 0x0FFFFFFF

// Sign sentinel nibbles. The most-significant display nibble is always
// replaced by one of these, which limits the effective magnitude to 24 bits.
const (
	sentinelPositive = 0x08
	sentinelNegative = 0x07
)

// EncodeNumber encodes a signed integer into the device's fixed-width
// nibble display format: eight 4-bit groups from most to least significant,
// with the leading group overwritten by the sign sentinel (0x08 positive,
// 0x07 negative). Out-of-range magnitudes saturate to maxDisplayMagnitude;
// this is a deliberate saturating policy, not an error path. Every output
// nibble is masked to 7 bits because the wire protocol reserves the high bit.
func EncodeNumber(value int64) [8]byte {
	// Clamp before negating; -math.MinInt64 overflows back to itself.
	magnitude := int64(maxDisplayMagnitude)
	if value > -maxDisplayMagnitude && value < maxDisplayMagnitude {
		magnitude = value
		if magnitude < 0 {
			magnitude = -magnitude
		}
	}

	var out [8]byte
	for i := 0; i < 8; i++ {
		shift := uint(28 - 4*i)
		out[i] = byte(magnitude>>shift) & 0x0F
	}

	if value < 0 {
		out[0] = sentinelNegative
	} else {
		out[0] = sentinelPositive
	}

	for i := range out {
		out[i] &= 0x7F
	}
	return out
}

// TrimDisplay drops the two leading nibbles for wire contexts that only
// carry six payload nibbles (the BPM display).
func TrimDisplay(encoded [8]byte) []byte {
	trimmed := make([]byte, 6)
	copy(trimmed, encoded[2:])
	return trimmed
}

// EncodeRate encodes a pitch-rate percentage into the 6-nibble jog display
// format observed in USB traffic: a sign sentinel followed by five nibbles
// of |percent|*100. Magnitudes of 100% or more saturate to the fixed
// maximum pattern the device emits at full pitch.
func EncodeRate(percent float64) [6]byte {
	out := [6]byte{sentinelPositive}
	if percent < 0 {
		out[0] = sentinelNegative
	}

	value := int64(math.Abs(percent) * 100)
	if value >= 10000 {
		copy(out[1:], []byte{0x0F, 0x0F, 0x0F, 0x0F, 0x0D})
		return out
	}
	out[1] = byte(value>>16) & 0x0F
	out[2] = byte(value>>12) & 0x0F
	out[3] = byte(value>>8) & 0x0F
	out[4] = byte(value>>4) & 0x0F
	out[5] = byte(value) & 0x0F
	return out
}
