// Package midiport implements the wire transport over the rtmidi driver of
// gomidi, plus an in-memory transport for tests and embedding without
// hardware. Sends are serialized internally at the single-frame granularity
// so concurrent dispatchers and feedback timers can share one handle.
package midiport

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register rtmidi driver
	"go.uber.org/multierr"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// Error definitions for device discovery and transport state.
var (
	ErrNoDevice     = errors.New("no MIDI device matches the port pattern")
	ErrNotConnected = errors.New("transport is not connected")
)

const defaultBufferDepth = 128

// Transport is the device-backed contracts.Transport. Inbound traffic
// arrives on a driver callback and is buffered in a channel drained by Poll;
// a full buffer drops frames rather than blocking the driver.
type Transport struct {
	log contracts.Logger

	mu        sync.Mutex // guards connection state and serializes Send
	in        drivers.In
	out       drivers.Out
	send      func(gomidi.Message) error
	stop      func()
	connected atomic.Bool

	frames chan contracts.Frame
}

// New creates an unopened device transport.
func New(log contracts.Logger) *Transport {
	return &Transport{
		log:    log,
		frames: make(chan contracts.Frame, defaultBufferDepth),
	}
}

// ListPorts enumerates the MIDI ports the driver can see.
func ListPorts() []contracts.DeviceInfo {
	byName := make(map[string]*contracts.DeviceInfo)
	var order []string
	for _, in := range gomidi.GetInPorts() {
		name := in.String()
		byName[name] = &contracts.DeviceInfo{Name: name, Input: true}
		order = append(order, name)
	}
	for _, out := range gomidi.GetOutPorts() {
		name := out.String()
		if info, ok := byName[name]; ok {
			info.Output = true
			continue
		}
		byName[name] = &contracts.DeviceInfo{Name: name, Output: true}
		order = append(order, name)
	}
	devices := make([]contracts.DeviceInfo, 0, len(order))
	for _, name := range order {
		devices = append(devices, *byName[name])
	}
	return devices
}

// Open connects to the first input and output port whose name contains
// pattern. Both directions must resolve; a device with only one visible
// direction is reported as not found.
func (t *Transport) Open(pattern string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connected.Load() {
		return nil
	}

	in, err := findInPort(pattern)
	if err != nil {
		return err
	}
	out, err := findOutPort(pattern)
	if err != nil {
		return err
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return fmt.Errorf("create sender for %q: %w", out.String(), err)
	}
	stop, err := gomidi.ListenTo(in, t.handleMessage, gomidi.UseSysEx())
	if err != nil {
		return fmt.Errorf("listen on %q: %w", in.String(), err)
	}

	t.in = in
	t.out = out
	t.send = send
	t.stop = stop
	t.connected.Store(true)
	t.log.Info("MIDI device connected",
		t.log.Field().String("input", in.String()),
		t.log.Field().String("output", out.String()))
	return nil
}

// handleMessage converts driver messages into frames. Unparseable traffic
// (pitch bend, jog data, clock) is ignored; the engine has no use for it.
func (t *Transport) handleMessage(msg gomidi.Message, timestampms int32) {
	var (
		channel, key, velocity uint8
		frame                  contracts.Frame
	)
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		frame = contracts.NoteOn(channel, key, velocity)
	case msg.GetNoteOff(&channel, &key, &velocity):
		frame = contracts.NoteOff(channel, key)
	case msg.GetControlChange(&channel, &key, &velocity):
		frame = contracts.ControlChange(channel, key, velocity)
	default:
		var data []byte
		if msg.GetSysEx(&data) {
			frame = contracts.SysEx(data)
			break
		}
		return
	}

	select {
	case t.frames <- frame:
	default:
		t.log.Warn("inbound frame buffer full, dropping frame")
	}
}

// Send writes one frame to the device. Safe for concurrent callers; whole
// frames never interleave.
func (t *Transport) Send(frame contracts.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected.Load() || t.send == nil {
		return ErrNotConnected
	}
	return t.send(toMessage(frame))
}

// Poll waits up to timeout for one inbound frame.
func (t *Transport) Poll(timeout time.Duration) (contracts.Frame, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case frame := <-t.frames:
		return frame, true
	case <-timer.C:
		return contracts.Frame{}, false
	}
}

// Connected reports whether a device is currently open.
func (t *Transport) Connected() bool {
	return t.connected.Load()
}

// Close stops the listener and releases both ports.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected.Load() {
		return nil
	}
	t.connected.Store(false)

	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	var err error
	if t.in != nil {
		err = multierr.Append(err, t.in.Close())
		t.in = nil
	}
	if t.out != nil {
		err = multierr.Append(err, t.out.Close())
		t.out = nil
	}
	t.send = nil
	return err
}

// toMessage converts a frame to the driver's message encoding.
func toMessage(frame contracts.Frame) gomidi.Message {
	switch frame.Kind {
	case contracts.FrameNoteOff:
		return gomidi.NoteOff(frame.Channel, frame.Data1)
	case contracts.FrameControlChange:
		return gomidi.ControlChange(frame.Channel, frame.Data1, frame.Data2)
	case contracts.FrameSysEx:
		return gomidi.SysEx(frame.SysEx)
	default:
		return gomidi.NoteOn(frame.Channel, frame.Data1, frame.Data2)
	}
}

func findInPort(pattern string) (drivers.In, error) {
	for _, in := range gomidi.GetInPorts() {
		if strings.Contains(in.String(), pattern) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: input %q", ErrNoDevice, pattern)
}

func findOutPort(pattern string) (drivers.Out, error) {
	for _, out := range gomidi.GetOutPorts() {
		if strings.Contains(out.String(), pattern) {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: output %q", ErrNoDevice, pattern)
}
