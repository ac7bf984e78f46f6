package dispatch

import (
	"sync"
	"time"

	"github.com/leandrodaf/mixtrack/internal/protocol"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// DefaultFeedbackDuration is how long a pressed button's LED stays lit.
const DefaultFeedbackDuration = 200 * time.Millisecond

// feedbackKey identifies one in-flight deferred "off" write. Basic controls
// key by deck and kind; multi-note, pad, effect and FX presses key by the
// resolved output address so two pads of the same group re-arm independently.
type feedbackKey struct {
	deck    contracts.Deck
	kind    contracts.ControlKind
	channel uint8
	note    uint8
	byNote  bool
}

// Scheduler drives per-button LED feedback: an immediate "on" write followed
// by one deferred, supersedable "off" write. A new press for the same key
// re-arms the timer instead of stacking timers, so a stale timer from an
// earlier press never darkens a freshly lit LED. Scheduling never blocks the
// caller; the deferred write runs on its own timer goroutine.
type Scheduler struct {
	dispatcher *Dispatcher
	table      *protocol.AddressTable
	duration   time.Duration
	log        contracts.Logger

	mu     sync.Mutex
	gen    map[feedbackKey]uint64
	timers map[feedbackKey]*time.Timer
	closed bool
}

// NewScheduler builds a feedback scheduler issuing writes through the given
// dispatcher. A non-positive duration falls back to the default.
func NewScheduler(dispatcher *Dispatcher, table *protocol.AddressTable, duration time.Duration, log contracts.Logger) *Scheduler {
	if duration <= 0 {
		duration = DefaultFeedbackDuration
	}
	return &Scheduler{
		dispatcher: dispatcher,
		table:      table,
		duration:   duration,
		log:        log,
		gen:        make(map[feedbackKey]uint64),
		timers:     make(map[feedbackKey]*time.Timer),
	}
}

// HandlePress lights the LED behind a classified press and schedules its
// deferred off write. The "on" write happens synchronously, so within one
// key's timeline "on" is always observed before "off".
func (s *Scheduler) HandlePress(event contracts.InputEvent) {
	switch ev := event.(type) {
	case contracts.PressEvent:
		if ev.Kind.Basic() || ev.Kind.PadMode() {
			s.flashKind(ev.Deck, ev.Kind)
			return
		}
		// Grouped, pad and effect presses light only the pressed button.
		s.flashNote(s.outputChannel(ev.Deck, ev.Channel), ev.Note)
	case contracts.FxPressEvent:
		s.flashNote(ev.Channel, ev.Note)
	}
}

func (s *Scheduler) flashKind(deck contracts.Deck, kind contracts.ControlKind) {
	s.dispatcher.SetLED(deck, kind, true)
	key := feedbackKey{deck: deck, kind: kind}
	s.schedule(key, func() {
		s.dispatcher.SetLED(deck, kind, false)
	})
}

func (s *Scheduler) flashNote(channel, note uint8) {
	s.dispatcher.SetNote(channel, note, true)
	key := feedbackKey{channel: channel, note: note, byNote: true}
	s.schedule(key, func() {
		s.dispatcher.SetNote(channel, note, false)
	})
}

// outputChannel resolves where the LED behind an inbound press lives.
// Presses arriving on the deck-transport channels light LEDs on the
// extended channels; traffic already on LED or FX channels echoes back as-is.
func (s *Scheduler) outputChannel(deck contracts.Deck, inbound uint8) uint8 {
	if inbound == s.table.Channel(deck, protocol.CategoryDeckTransport) {
		return s.table.Channel(deck, protocol.CategoryExtendedLED)
	}
	if _, ok := s.table.DeckForChannel(inbound); ok {
		return inbound
	}
	return s.table.Channel(deck, protocol.CategoryExtendedLED)
}

// schedule arms the deferred off write for a key, superseding any timer
// already in flight. The fired callback re-checks that it is still the
// current generation for its key before writing, so a superseded timer that
// already left time.AfterFunc's queue becomes a no-op.
func (s *Scheduler) schedule(key feedbackKey, off func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.gen[key]++
	current := s.gen[key]
	if t, ok := s.timers[key]; ok {
		t.Stop()
		s.log.Debug("feedback timer re-armed",
			s.log.Field().Uint64("generation", current))
	}
	s.timers[key] = time.AfterFunc(s.duration, func() {
		s.mu.Lock()
		if s.closed || s.gen[key] != current {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		off()
	})
}

// Stop abandons every in-flight timer. Abandoning is safe: a stray off
// write to a disconnected transport is already a no-op downstream.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if len(s.timers) > 0 {
		s.log.Debug("abandoning in-flight feedback timers",
			s.log.Field().Int("count", len(s.timers)))
	}
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
