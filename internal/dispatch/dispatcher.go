// Package dispatch turns logical control updates into wire frames and routes
// classified inbound presses to LED feedback. It owns no transport state
// beyond a shared handle; all table and encoding knowledge lives in
// internal/protocol.
package dispatch

import (
	"github.com/leandrodaf/mixtrack/internal/protocol"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// Display SysEx header: a fixed device/category prefix followed by the deck
// and the display type code.
var displayHeader = [3]byte{0x00, 0x20, 0x7F}

// Demo-mode switch payloads, issued once at connect time.
var (
	demoEnterPayload = []byte{0x7E, 0x00, 0x06, 0x00}
	demoExitPayload  = []byte{0x7E, 0x00, 0x06, 0x01}
)

// Dispatcher composes address, encoding and range lookups into wire frames
// and hands them to the transport. Every operation is fire-and-forget: the
// wire protocol has no acknowledgment, so calls return as soon as frames are
// submitted. Calls without a connected transport are logged no-ops; timers
// may legitimately fire after shutdown has begun and must not crash mid-show.
type Dispatcher struct {
	cfg       protocol.Config
	table     *protocol.AddressTable
	transport contracts.Transport
	log       contracts.Logger
}

// NewDispatcher builds a dispatcher over the given transport. The transport
// handle is shared, not owned; callers on different goroutines may dispatch
// concurrently since the transport serializes at the frame level.
func NewDispatcher(transport contracts.Transport, table *protocol.AddressTable, cfg protocol.Config, log contracts.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		table:     table,
		transport: transport,
		log:       log,
	}
}

// SetLED sets every LED a kind addresses on a deck. Multi-note groups emit
// one frame per note. Off writes use velocity 1, not 0.
func (d *Dispatcher) SetLED(deck contracts.Deck, kind contracts.ControlKind, on bool) {
	velocity := d.cfg.VelocityOff
	if on {
		velocity = d.cfg.VelocityOn
	}
	channel := d.table.Channel(deck, protocol.CategoryExtendedLED)

	if kind.Grouped() {
		for _, note := range d.table.Notes(kind) {
			d.send(contracts.NoteOn(channel, note, velocity))
		}
		return
	}

	note, ok := d.table.Note(kind, deck)
	if !ok {
		d.log.Debug("no note mapping for control",
			d.log.Field().String("kind", kind.String()),
			d.log.Field().Uint8("deck", uint8(deck)))
		return
	}
	d.send(contracts.NoteOn(channel, note, velocity))
}

// SetNote writes one raw LED note, used by specific-button feedback where
// the output address comes from the inbound frame rather than a kind.
func (d *Dispatcher) SetNote(channel, note uint8, on bool) {
	velocity := d.cfg.VelocityOff
	if on {
		velocity = d.cfg.VelocityOn
	}
	d.send(contracts.NoteOn(channel, note, velocity))
}

// SetRing positions a ring indicator from a percentage. Updates are
// idempotent and stateless; the device keeps only the last written value.
func (d *Dispatcher) SetRing(deck contracts.Deck, ring contracts.RingType, percent float64) {
	channel := d.table.Channel(deck, protocol.CategoryDeckTransport)
	d.send(contracts.ControlChange(channel, d.cfg.RingControl(ring), d.cfg.RingValue(ring, percent)))
}

// SetVUMeter drives a deck's VU meter. Levels above 1.0 are read as
// percentages, at or below 1.0 as fractions.
func (d *Dispatcher) SetVUMeter(deck contracts.Deck, level float64) {
	channel := d.table.Channel(deck, protocol.CategoryDeckTransport)
	d.send(contracts.ControlChange(channel, d.cfg.VUControl, d.cfg.VUValue(level)))
}

// SetBPMDisplay shows a BPM value with two implied decimals. The BPM wire
// format carries only six payload nibbles, so the encoding is trimmed.
func (d *Dispatcher) SetBPMDisplay(deck contracts.Deck, bpm float64) {
	encoded := protocol.EncodeNumber(int64(bpm * 100))
	d.sendDisplay(deck, d.cfg.BPMDisplayType, protocol.TrimDisplay(encoded))
}

// SetTimeDisplay shows a time value in milliseconds.
func (d *Dispatcher) SetTimeDisplay(deck contracts.Deck, milliseconds int64) {
	encoded := protocol.EncodeNumber(milliseconds)
	d.sendDisplay(deck, d.cfg.TimeDisplayType, encoded[:])
}

// SetRateDisplay shows a signed pitch-rate percentage on the jog display.
func (d *Dispatcher) SetRateDisplay(deck contracts.Deck, percent float64) {
	encoded := protocol.EncodeRate(percent)
	d.sendDisplay(deck, d.cfg.RateDisplayType, encoded[:])
}

func (d *Dispatcher) sendDisplay(deck contracts.Deck, displayType byte, payload []byte) {
	data := make([]byte, 0, len(displayHeader)+2+len(payload))
	data = append(data, displayHeader[:]...)
	data = append(data, byte(deck), displayType)
	data = append(data, payload...)
	d.send(contracts.SysEx(data))
}

// EnterDemoMode puts the device into its demo animation.
func (d *Dispatcher) EnterDemoMode() {
	d.send(contracts.SysEx(demoEnterPayload))
}

// ExitDemoMode stops the demo animation; issued once at connect time.
func (d *Dispatcher) ExitDemoMode() {
	d.send(contracts.SysEx(demoExitPayload))
}

// ClearAllLEDs turns off every LED on both decks.
func (d *Dispatcher) ClearAllLEDs() {
	for _, deck := range contracts.Decks {
		for _, kind := range contracts.AllControlKinds() {
			d.SetLED(deck, kind, false)
		}
	}
}

// send hands one frame to the transport. A missing or disconnected
// transport degrades to a logged no-op rather than an error.
func (d *Dispatcher) send(frame contracts.Frame) {
	if d.transport == nil || !d.transport.Connected() {
		d.log.Debug("dispatch without connected transport, dropping frame")
		return
	}
	if err := d.transport.Send(frame); err != nil {
		d.log.Warn("transport send failed", d.log.Field().Error("error", err))
	}
}
