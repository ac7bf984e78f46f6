package mixtrack

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/mixtrack/internal/logger"
	"github.com/leandrodaf/mixtrack/internal/midiport"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

func newTestClient(t *testing.T) (*Client, *midiport.MemoryTransport) {
	t.Helper()
	transport := midiport.NewMemoryTransport()
	client, err := New(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithTransport(transport),
		contracts.WithFeedbackDuration(30*time.Millisecond),
	)
	require.NoError(t, err)
	return client, transport
}

func TestConnectResetsDevice(t *testing.T) {
	client, transport := newTestClient(t)
	require.NoError(t, client.Connect())

	sent := transport.Sent()
	require.NotEmpty(t, sent)

	// The demo-exit SysEx goes out first, before any LED writes.
	first := sent[0]
	assert.Equal(t, contracts.FrameSysEx, first.Kind)
	assert.Equal(t, []byte{0x7E, 0x00, 0x06, 0x01}, first.SysEx)

	// Every note write in the reset burst is an off write.
	var notes, controls int
	for _, frame := range sent[1:] {
		switch frame.Kind {
		case contracts.FrameNote:
			notes++
			assert.Equal(t, uint8(1), frame.Data2)
		case contracts.FrameControlChange:
			controls++
		}
	}
	assert.NotZero(t, notes)
	// Two rings per deck plus one VU per deck.
	assert.Equal(t, 6, controls)
}

func TestConnectFailureLeavesClientDisconnected(t *testing.T) {
	client, err := New(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithTransport(&failingTransport{}),
	)
	require.NoError(t, err)

	require.Error(t, client.Connect())
	assert.ErrorIs(t, client.Start(), ErrNotConnected)
}

func TestPressTriggersFeedback(t *testing.T) {
	client, transport := newTestClient(t)
	require.NoError(t, client.Connect())
	transport.Reset()

	require.NoError(t, client.Start())
	defer client.Stop()

	// Hotcue pad 1 press on deck 1's LED channel.
	transport.Inject(contracts.NoteOn(4, 24, 127))

	require.Eventually(t, func() bool {
		return len(transport.Sent()) == 2
	}, time.Second, 5*time.Millisecond)

	sent := transport.Sent()
	assert.Equal(t, uint8(4), sent[0].Channel, "feedback answers on the LED channel")
	assert.Equal(t, uint8(24), sent[0].Data1)
	assert.Equal(t, uint8(127), sent[0].Data2)
	assert.Equal(t, uint8(1), sent[1].Data2)
}

func TestObserversReceiveFrames(t *testing.T) {
	client, transport := newTestClient(t)
	require.NoError(t, client.Connect())
	require.NoError(t, client.Start())
	defer client.Stop()

	var mu sync.Mutex
	var seen []contracts.Frame
	client.RegisterInputObserver("test", func(frame contracts.Frame) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, frame)
	})

	transport.Inject(contracts.ControlChange(0, 22, 64))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	frame := seen[0]
	mu.Unlock()
	assert.Equal(t, contracts.FrameControlChange, frame.Kind)
	assert.Equal(t, uint8(22), frame.Data1)

	client.UnregisterInputObserver("test")
	transport.Inject(contracts.ControlChange(0, 22, 0))
	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 1, "unregistered observers see no further frames")
}

func TestStartStopLifecycle(t *testing.T) {
	client, transport := newTestClient(t)
	require.NoError(t, client.Connect())

	require.NoError(t, client.Start())
	assert.ErrorIs(t, client.Start(), ErrAlreadyStarted)

	require.NoError(t, client.Stop())
	require.NoError(t, client.Stop(), "stopping twice is a no-op")

	// The loop restarts cleanly after a stop.
	require.NoError(t, client.Start())
	require.NoError(t, client.Disconnect())
	assert.False(t, transport.Connected())
}

// The clock display is twelve-hour: noon and midnight both read 12:MM,
// never 0:MM.
func TestSetCurrentTimeDisplayTwelveHourClock(t *testing.T) {
	client, transport := newTestClient(t)
	require.NoError(t, client.Connect())
	transport.Reset()

	noon := time.Date(2026, 8, 26, 12, 5, 0, 0, time.UTC)
	client.SetCurrentTimeDisplay(contracts.Deck1, noon)

	sent := transport.Sent()
	require.Len(t, sent, 1)
	// 12:05 -> 725000 ms -> 0x000B1008, sentinel in the lead nibble.
	assert.Equal(t,
		[]byte{0x00, 0x20, 0x7F, 0x01, 0x04, 0x08, 0x00, 0x00, 0x0B, 0x01, 0x00, 0x00, 0x08},
		sent[0].SysEx)

	transport.Reset()
	midnight := time.Date(2026, 8, 26, 0, 5, 0, 0, time.UTC)
	client.SetCurrentTimeDisplay(contracts.Deck1, midnight)
	afternoon := time.Date(2026, 8, 26, 15, 4, 0, 0, time.UTC)
	client.SetCurrentTimeDisplay(contracts.Deck2, afternoon)

	sent = transport.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, []byte{0x00, 0x20, 0x7F, 0x01, 0x04, 0x08, 0x00, 0x00, 0x0B, 0x01, 0x00, 0x00, 0x08},
		sent[0].SysEx, "midnight encodes the same clock reading as noon")
	// 3:04 pm -> 184000 ms -> 0x0002CEC0.
	assert.Equal(t, []byte{0x00, 0x20, 0x7F, 0x02, 0x04, 0x08, 0x00, 0x00, 0x02, 0x0C, 0x0E, 0x0C, 0x00},
		sent[1].SysEx)
}

func TestSetDisplayNumberRoutesByType(t *testing.T) {
	client, transport := newTestClient(t)
	require.NoError(t, client.Connect())
	transport.Reset()

	client.SetDisplayNumber(contracts.Deck1, contracts.DisplayBPM, 128.5)
	client.SetDisplayNumber(contracts.Deck1, contracts.DisplayTime, 5000)
	client.SetDisplayNumber(contracts.Deck2, contracts.DisplayRate, -3.2)

	sent := transport.Sent()
	require.Len(t, sent, 3)
	// Byte 4 of the display SysEx carries the wire display-type code.
	assert.Equal(t, byte(1), sent[0].SysEx[4])
	assert.Equal(t, byte(4), sent[1].SysEx[4])
	assert.Equal(t, byte(2), sent[2].SysEx[4])
	// The rate payload leads with the negative-sign sentinel.
	assert.Equal(t, byte(0x07), sent[2].SysEx[5])
}

func TestClassifyExposesLogicalEvents(t *testing.T) {
	client, _ := newTestClient(t)

	event := client.Classify(contracts.NoteOn(1, 0, 127))
	press, ok := event.(contracts.PressEvent)
	require.True(t, ok)
	assert.Equal(t, contracts.Deck2, press.Deck)
	assert.Equal(t, contracts.ControlPlay, press.Kind)

	assert.Nil(t, client.Classify(contracts.NoteOn(0, 36, 127)))
}

// failingTransport refuses to open, for connect-failure paths.
type failingTransport struct{}

func (f *failingTransport) Open(pattern string) error { return midiport.ErrNoDevice }
func (f *failingTransport) Send(frame contracts.Frame) error {
	return midiport.ErrNotConnected
}
func (f *failingTransport) Poll(timeout time.Duration) (contracts.Frame, bool) {
	return contracts.Frame{}, false
}
func (f *failingTransport) Connected() bool { return false }
func (f *failingTransport) Close() error    { return nil }
