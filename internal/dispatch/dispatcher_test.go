package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/mixtrack/internal/logger"
	"github.com/leandrodaf/mixtrack/internal/midiport"
	"github.com/leandrodaf/mixtrack/internal/protocol"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *midiport.MemoryTransport) {
	t.Helper()
	transport := midiport.NewMemoryTransport()
	require.NoError(t, transport.Open(""))
	cfg := protocol.DefaultConfig()
	table := protocol.NewAddressTable(cfg)
	return NewDispatcher(transport, table, cfg, logger.NewNopLogger()), transport
}

func TestSetLEDHotcueGroup(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.SetLED(contracts.Deck1, contracts.ControlHotcue, true)

	sent := transport.Sent()
	require.Len(t, sent, 4)
	for i, note := range []uint8{24, 25, 26, 27} {
		assert.Equal(t, contracts.FrameNote, sent[i].Kind)
		assert.Equal(t, uint8(4), sent[i].Channel)
		assert.Equal(t, note, sent[i].Data1)
		assert.Equal(t, uint8(127), sent[i].Data2)
	}

	transport.Reset()
	d.SetLED(contracts.Deck1, contracts.ControlHotcue, false)

	sent = transport.Sent()
	require.Len(t, sent, 4)
	for i, note := range []uint8{24, 25, 26, 27} {
		assert.Equal(t, note, sent[i].Data1)
		assert.Equal(t, uint8(1), sent[i].Data2, "off writes use velocity 1, not 0")
	}
}

func TestSetLEDBasicControl(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.SetLED(contracts.Deck2, contracts.ControlPlay, true)

	sent := transport.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, uint8(5), sent[0].Channel, "deck 2 LED channel is offset+1")
	assert.Equal(t, uint8(0), sent[0].Data1)
	assert.Equal(t, uint8(127), sent[0].Data2)
}

func TestSetRing(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.SetRing(contracts.Deck1, contracts.RingSpinner, 50)
	d.SetRing(contracts.Deck2, contracts.RingPosition, 100)

	sent := transport.Sent()
	require.Len(t, sent, 2)

	assert.Equal(t, contracts.FrameControlChange, sent[0].Kind)
	assert.Equal(t, uint8(0), sent[0].Channel)
	assert.Equal(t, uint8(6), sent[0].Data1)
	assert.Equal(t, uint8(90), sent[0].Data2)

	assert.Equal(t, uint8(1), sent[1].Channel)
	assert.Equal(t, uint8(63), sent[1].Data1)
	assert.Equal(t, uint8(52), sent[1].Data2)
}

func TestSetVUMeterDualMode(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.SetVUMeter(contracts.Deck1, 0.5)
	d.SetVUMeter(contracts.Deck1, 50)

	sent := transport.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, uint8(31), sent[0].Data1)
	assert.Equal(t, uint8(45), sent[0].Data2)
	assert.Equal(t, sent[0].Data2, sent[1].Data2, "fraction and percentage scale agree")
}

func TestSetBPMDisplay(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.SetBPMDisplay(contracts.Deck1, 128.5) // 12850 = 0x3232

	sent := transport.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, contracts.FrameSysEx, sent[0].Kind)
	assert.Equal(t,
		[]byte{0x00, 0x20, 0x7F, 0x01, 0x01, 0x0, 0x0, 0x3, 0x2, 0x3, 0x2},
		sent[0].SysEx)
}

func TestSetTimeDisplay(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.SetTimeDisplay(contracts.Deck2, 0x1234)

	sent := transport.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t,
		[]byte{0x00, 0x20, 0x7F, 0x02, 0x04, 0x08, 0x0, 0x0, 0x0, 0x1, 0x2, 0x3, 0x4},
		sent[0].SysEx)
}

func TestSetRateDisplay(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.SetRateDisplay(contracts.Deck1, -3.2)

	sent := transport.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t,
		[]byte{0x00, 0x20, 0x7F, 0x01, 0x02, 0x07, 0x0, 0x0, 0x1, 0x4, 0x0},
		sent[0].SysEx)
}

func TestDemoModeMessages(t *testing.T) {
	d, transport := newTestDispatcher(t)

	d.ExitDemoMode()
	d.EnterDemoMode()

	sent := transport.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, []byte{0x7E, 0x00, 0x06, 0x01}, sent[0].SysEx)
	assert.Equal(t, []byte{0x7E, 0x00, 0x06, 0x00}, sent[1].SysEx)
}

// Dispatch without a connected transport must be a silent no-op, never a
// panic or an error surfaced to the caller.
func TestDispatchOnDisconnected(t *testing.T) {
	transport := midiport.NewMemoryTransport()
	cfg := protocol.DefaultConfig()
	table := protocol.NewAddressTable(cfg)
	d := NewDispatcher(transport, table, cfg, logger.NewNopLogger())

	d.SetLED(contracts.Deck1, contracts.ControlPlay, true)
	d.SetRing(contracts.Deck1, contracts.RingSpinner, 50)
	d.SetVUMeter(contracts.Deck1, 50)
	d.SetBPMDisplay(contracts.Deck1, 120)

	assert.Empty(t, transport.Sent())

	nilDispatcher := NewDispatcher(nil, table, cfg, logger.NewNopLogger())
	nilDispatcher.SetLED(contracts.Deck1, contracts.ControlPlay, true)
}
