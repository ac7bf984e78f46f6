// Package mixtrack is the high-level client for the Numark Mixtrack
// Platinum FX. It owns the device connection, translates logical control
// updates into wire traffic, and fans classified button presses out to
// registered observers and the LED feedback scheduler.
package mixtrack

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/leandrodaf/mixtrack/internal/dispatch"
	"github.com/leandrodaf/mixtrack/internal/protocol"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

var (
	// ErrNotConnected is returned by operations that need an open device port.
	ErrNotConnected = errors.New("device is not connected")
	// ErrAlreadyStarted is returned when Start is called on a running client.
	ErrAlreadyStarted = errors.New("event loop already started")
)

// pollTimeout bounds each transport poll so the reader can notice shutdown.
const pollTimeout = 100 * time.Millisecond

// stopGrace bounds how long Stop waits for the reader and drain goroutines.
const stopGrace = time.Second

// Client drives one Mixtrack Platinum FX device. All outbound operations
// are safe for concurrent use; the inbound side runs on two goroutines
// started by Start and joined by Stop.
type Client struct {
	options    contracts.ClientOptions
	log        contracts.Logger
	transport  contracts.Transport
	dispatcher *dispatch.Dispatcher
	classifier *dispatch.Classifier
	feedback   *dispatch.Scheduler

	mu        sync.Mutex
	observers map[string]contracts.InputObserver
	running   bool
	stop      chan struct{}
	done      chan struct{}
}

func newClient(options contracts.ClientOptions) *Client {
	cfg := protocol.DefaultConfig()
	table := protocol.NewAddressTable(cfg)
	dispatcher := dispatch.NewDispatcher(options.Transport, table, cfg, options.Logger)

	client := &Client{
		options:    options,
		log:        options.Logger,
		transport:  options.Transport,
		dispatcher: dispatcher,
		classifier: dispatch.NewClassifier(table),
		observers:  make(map[string]contracts.InputObserver),
	}
	if !options.DisableFeedback {
		client.feedback = dispatch.NewScheduler(dispatcher, table, options.FeedbackDuration, options.Logger)
	}
	return client
}

// Connect opens the device ports, stops the out-of-box demo animation and
// clears every LED. A failed open leaves the client fully disconnected.
func (c *Client) Connect() error {
	if err := c.transport.Open(c.options.PortPattern); err != nil {
		return fmt.Errorf("connect to device: %w", err)
	}
	c.dispatcher.ExitDemoMode()
	c.dispatcher.ClearAllLEDs()
	c.ClearRings()
	c.ClearVUMeters()
	c.log.Info("device connected",
		c.log.Field().String("pattern", c.options.PortPattern))
	return nil
}

// Disconnect stops the event loop and closes the device ports. Errors from
// both stages are combined.
func (c *Client) Disconnect() error {
	err := c.Stop()
	if c.feedback != nil {
		c.feedback.Stop()
	}
	return multierr.Append(err, c.transport.Close())
}

// Start launches the inbound event loop: a reader goroutine that blocks
// only on the transport poll, and a drain goroutine that classifies frames
// and fans them out to observers and LED feedback.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return ErrAlreadyStarted
	}
	if !c.transport.Connected() {
		return ErrNotConnected
	}

	frames := make(chan contracts.Frame, c.options.QueueSize)
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.running = true

	go c.read(frames, c.stop)
	go c.drain(frames, c.done)
	return nil
}

// Stop halts the event loop. It waits a bounded grace period for the
// goroutines and warns if they do not join, rather than blocking shutdown
// indefinitely. The loop may be started again afterwards.
func (c *Client) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	stop, done := c.stop, c.done
	c.mu.Unlock()

	close(stop)
	select {
	case <-done:
	case <-time.After(stopGrace):
		c.log.Warn("event loop did not stop within grace period")
	}
	return nil
}

// read polls the transport until stopped. Frames are forwarded to the
// drain stage; a full queue drops the frame with a warning instead of
// stalling the poll loop.
func (c *Client) read(frames chan<- contracts.Frame, stop <-chan struct{}) {
	defer close(frames)
	for {
		select {
		case <-stop:
			return
		default:
		}

		frame, ok := c.transport.Poll(pollTimeout)
		if !ok {
			continue
		}
		select {
		case frames <- frame:
		default:
			c.log.Warn("inbound frame queue full, dropping frame")
		}
	}
}

// drain classifies frames and fans them out. Observers run on this
// goroutine, so a slow observer delays input handling, not wire writes.
func (c *Client) drain(frames <-chan contracts.Frame, done chan<- struct{}) {
	defer close(done)
	for frame := range frames {
		if event := c.classifier.Classify(frame); event != nil && c.feedback != nil {
			c.feedback.HandlePress(event)
		}
		for _, observer := range c.snapshotObservers() {
			observer(frame)
		}
	}
}

func (c *Client) snapshotObservers() []contracts.InputObserver {
	c.mu.Lock()
	defer c.mu.Unlock()
	observers := make([]contracts.InputObserver, 0, len(c.observers))
	for _, observer := range c.observers {
		observers = append(observers, observer)
	}
	return observers
}

// RegisterInputObserver adds a named observer for inbound frames. A second
// registration under the same name replaces the first.
func (c *Client) RegisterInputObserver(name string, observer contracts.InputObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers[name] = observer
}

// UnregisterInputObserver removes a named observer. Unknown names are a no-op.
func (c *Client) UnregisterInputObserver(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.observers, name)
}

// Classify exposes input classification for callers that consume raw
// frames through an observer and want logical events.
func (c *Client) Classify(frame contracts.Frame) contracts.InputEvent {
	return c.classifier.Classify(frame)
}

// SetLED sets every LED a control kind addresses on a deck.
func (c *Client) SetLED(deck contracts.Deck, kind contracts.ControlKind, on bool) {
	c.dispatcher.SetLED(deck, kind, on)
}

// SetRingPercentage positions a jog ring indicator from a 0-100 percentage.
func (c *Client) SetRingPercentage(deck contracts.Deck, ring contracts.RingType, percent float64) {
	c.dispatcher.SetRing(deck, ring, percent)
}

// SetVUMeter drives a deck's VU meter. Levels above 1.0 are read as
// percentages, at or below 1.0 as fractions.
func (c *Client) SetVUMeter(deck contracts.Deck, level float64) {
	c.dispatcher.SetVUMeter(deck, level)
}

// SetBPMDisplay shows a BPM value on a deck's screen.
func (c *Client) SetBPMDisplay(deck contracts.Deck, bpm float64) {
	c.dispatcher.SetBPMDisplay(deck, bpm)
}

// SetTimeDisplay shows a millisecond value on a deck's time display.
func (c *Client) SetTimeDisplay(deck contracts.Deck, milliseconds int64) {
	c.dispatcher.SetTimeDisplay(deck, milliseconds)
}

// SetCurrentTimeDisplay shows the wall clock on a deck's time display,
// encoded as twelve-hour minutes so the screen reads like a clock. Noon and
// midnight read as 12, not 0.
func (c *Client) SetCurrentTimeDisplay(deck contracts.Deck, now time.Time) {
	hour := now.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	milliseconds := int64(hour*60+now.Minute()) * 1000
	c.dispatcher.SetTimeDisplay(deck, milliseconds)
}

// SetRateDisplay shows a signed pitch-rate percentage on a deck's screen.
func (c *Client) SetRateDisplay(deck contracts.Deck, percent float64) {
	c.dispatcher.SetRateDisplay(deck, percent)
}

// SetDisplayNumber shows a value on the selected display. Time values are
// milliseconds; BPM and rate values keep their natural units.
func (c *Client) SetDisplayNumber(deck contracts.Deck, display contracts.DisplayType, value float64) {
	switch display {
	case contracts.DisplayTime:
		c.dispatcher.SetTimeDisplay(deck, int64(value))
	case contracts.DisplayRate:
		c.dispatcher.SetRateDisplay(deck, value)
	default:
		c.dispatcher.SetBPMDisplay(deck, value)
	}
}

// EnterDemoMode starts the device's demo animation.
func (c *Client) EnterDemoMode() {
	c.dispatcher.EnterDemoMode()
}

// ExitDemoMode stops the device's demo animation.
func (c *Client) ExitDemoMode() {
	c.dispatcher.ExitDemoMode()
}

// ClearAllLEDs turns off every LED on both decks.
func (c *Client) ClearAllLEDs() {
	c.dispatcher.ClearAllLEDs()
}

// ClearRings zeroes both ring indicators on both decks.
func (c *Client) ClearRings() {
	for _, deck := range contracts.Decks {
		c.dispatcher.SetRing(deck, contracts.RingSpinner, 0)
		c.dispatcher.SetRing(deck, contracts.RingPosition, 0)
	}
}

// ClearVUMeters zeroes both VU meters.
func (c *Client) ClearVUMeters() {
	for _, deck := range contracts.Decks {
		c.dispatcher.SetVUMeter(deck, 0)
	}
}
