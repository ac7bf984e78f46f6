package contracts

import "time"

// FrameKind enumerates the wire-protocol message variants the controller
// produces and consumes.
type FrameKind uint8

const (
	// FrameNote is a Note On message; the controller uses it both for button
	// presses (inbound) and LED writes (outbound).
	FrameNote FrameKind = iota
	// FrameNoteOff is a Note Off message. The device treats it as a release.
	FrameNoteOff
	// FrameControlChange is a continuous-value message (rings, VU meters).
	FrameControlChange
	// FrameSysEx is a variable-length system-exclusive payload (displays,
	// demo-mode switches).
	FrameSysEx
)

// Frame is one atomic wire-protocol message. Channel, Data1 and Data2 carry
// the note or control-change triplet; SysEx carries the payload of a
// system-exclusive frame without the surrounding framing bytes.
type Frame struct {
	Kind    FrameKind
	Channel uint8 // 0-15
	Data1   uint8 // Note number or controller number (0-127).
	Data2   uint8 // Velocity or controller value (0-127).
	SysEx   []byte
}

// NoteOn builds a Note On frame.
func NoteOn(channel, note, velocity uint8) Frame {
	return Frame{Kind: FrameNote, Channel: channel, Data1: note, Data2: velocity}
}

// NoteOff builds a Note Off frame.
func NoteOff(channel, note uint8) Frame {
	return Frame{Kind: FrameNoteOff, Channel: channel, Data1: note}
}

// ControlChange builds a continuous-value frame.
func ControlChange(channel, controller, value uint8) Frame {
	return Frame{Kind: FrameControlChange, Channel: channel, Data1: controller, Data2: value}
}

// SysEx builds a system-exclusive frame around the given payload.
func SysEx(data []byte) Frame {
	return Frame{Kind: FrameSysEx, SysEx: data}
}

// Transport moves frames between the engine and the device. Implementations
// must make Send safe for concurrent callers at the single-frame granularity:
// whole frames from different goroutines may interleave, partial frames must
// not.
type Transport interface {
	// Open connects to the first device whose port name contains pattern.
	Open(pattern string) error
	// Send writes one frame. It returns an error when no device is open;
	// callers that may legitimately race shutdown treat that as a no-op.
	Send(frame Frame) error
	// Poll waits up to timeout for one inbound frame. The second return is
	// false when the timeout elapsed or the transport is closed.
	Poll(timeout time.Duration) (Frame, bool)
	// Connected reports whether a device is currently open.
	Connected() bool
	// Close releases the device. Closing an unopened transport is a no-op.
	Close() error
}
