package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/mixtrack/internal/logger"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

type fakeController struct {
	mu    sync.Mutex
	rings map[[2]int]float64 // (deck, ring) -> percent
	vu    map[contracts.Deck]float64
	bpm   map[contracts.Deck]float64
	times map[contracts.Deck]time.Time
}

func newFakeController() *fakeController {
	return &fakeController{
		rings: make(map[[2]int]float64),
		vu:    make(map[contracts.Deck]float64),
		bpm:   make(map[contracts.Deck]float64),
		times: make(map[contracts.Deck]time.Time),
	}
}

func (f *fakeController) SetRingPercentage(deck contracts.Deck, ring contracts.RingType, percent float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rings[[2]int{int(deck), int(ring)}] = percent
}

func (f *fakeController) SetVUMeter(deck contracts.Deck, level float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vu[deck] = level
}

func (f *fakeController) SetBPMDisplay(deck contracts.Deck, bpm float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bpm[deck] = bpm
}

func (f *fakeController) SetCurrentTimeDisplay(deck contracts.Deck, now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.times[deck] = now
}

func (f *fakeController) vuLevels() map[contracts.Deck]float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	levels := make(map[contracts.Deck]float64, len(f.vu))
	for deck, level := range f.vu {
		levels[deck] = level
	}
	return levels
}

type scriptedSource struct {
	samples []contracts.Vitals
	index   int
}

func (s *scriptedSource) Vitals() (contracts.Vitals, error) {
	vitals := s.samples[s.index]
	if s.index < len(s.samples)-1 {
		s.index++
	}
	return vitals, nil
}

func newTestMonitor(source contracts.TelemetrySource) (*Monitor, *fakeController) {
	controller := newFakeController()
	m := New(controller, logger.NewNopLogger(),
		WithSource(source),
		// A negative staleness window disables sampling reuse across steps.
		WithCacheInterval(-1),
	)
	return m, controller
}

func TestEvaluateLevelTriggered(t *testing.T) {
	thresholds := contracts.DefaultAlertThresholds()

	quiet := Evaluate(contracts.Vitals{CPUUsage: 50, CPUTemp: 60}, thresholds)
	assert.False(t, quiet.Any)

	// At threshold counts as alerting, not above only.
	hot := Evaluate(contracts.Vitals{CPUTemp: 75}, thresholds)
	assert.True(t, hot.CPUTemp)
	assert.True(t, hot.Any)
	assert.False(t, hot.GPUTemp)

	multi := Evaluate(contracts.Vitals{CPUUsage: 95, MemoryUsage: 95}, thresholds)
	assert.True(t, multi.CPUUsage)
	assert.True(t, multi.MemoryUsage)
	assert.True(t, multi.Any)
}

// A metric crossing its threshold up, down and up again over three samples
// toggles the alert state on each sample and invokes the observer once per
// alerting sample. There is no debouncing.
func TestAlertTogglesWithoutDebounce(t *testing.T) {
	source := &scriptedSource{samples: []contracts.Vitals{
		{CPUTemp: 80},
		{CPUTemp: 60},
		{CPUTemp: 80},
	}}
	m, _ := newTestMonitor(source)

	var invocations []contracts.AlertState
	m.RegisterAlertObserver("test", func(state contracts.AlertState) {
		invocations = append(invocations, state)
	})

	now := time.Now()
	first := m.sample(now)
	second := m.sample(now)
	third := m.sample(now)

	assert.True(t, first.Any)
	assert.False(t, second.Any)
	assert.True(t, third.Any)

	require.Len(t, invocations, 2, "observer fires only on alerting samples")
	assert.True(t, invocations[0].CPUTemp)
	assert.True(t, invocations[1].CPUTemp)
}

func TestNormalRenderMapsVitalsToDecks(t *testing.T) {
	source := &scriptedSource{samples: []contracts.Vitals{
		{CPUUsage: 40, MemoryUsage: 30, CPUTemp: 60, GPUTemp: 20},
	}}
	m, controller := newTestMonitor(source)

	now := time.Date(2026, 8, 26, 15, 4, 0, 0, time.UTC)
	state := m.sample(now)
	require.False(t, state.Any)

	assert.Equal(t, 40.0, controller.rings[[2]int{1, int(contracts.RingSpinner)}])
	assert.Equal(t, 30.0, controller.rings[[2]int{1, int(contracts.RingPosition)}])
	// Temperatures scale against the 80 degree full-ring ceiling.
	assert.Equal(t, 75.0, controller.rings[[2]int{2, int(contracts.RingSpinner)}])
	assert.Equal(t, 25.0, controller.rings[[2]int{2, int(contracts.RingPosition)}])

	assert.Equal(t, 60.0, controller.bpm[contracts.Deck1])
	assert.Equal(t, 20.0, controller.bpm[contracts.Deck2])
	assert.Equal(t, now, controller.times[contracts.Deck1])
	assert.Equal(t, now, controller.times[contracts.Deck2])
}

func TestTempPercentCapsAtFullRing(t *testing.T) {
	m, _ := newTestMonitor(&scriptedSource{samples: []contracts.Vitals{{}}})
	assert.Equal(t, 100.0, m.tempPercent(95))
	assert.Equal(t, 50.0, m.tempPercent(40))
}

// Alerting samples flash the VU meters in an alternating deck cadence
// driven by one shared flash bit that toggles per sample.
func TestAlertFlashAlternatesDecks(t *testing.T) {
	source := &scriptedSource{samples: []contracts.Vitals{
		{MemoryUsage: 95},
	}}
	m, controller := newTestMonitor(source)

	now := time.Now()
	m.sample(now)
	assert.Equal(t, 100.0, controller.vu[contracts.Deck1])
	assert.Equal(t, 0.0, controller.vu[contracts.Deck2])

	m.sample(now)
	assert.Equal(t, 0.0, controller.vu[contracts.Deck1])
	assert.Equal(t, 100.0, controller.vu[contracts.Deck2])

	// Recovery clears the flash bit so the next alert starts lit again.
	source.samples = []contracts.Vitals{{}, {MemoryUsage: 95}}
	source.index = 0
	m.sample(now)
	m.sample(now)
	assert.Equal(t, 100.0, controller.vu[contracts.Deck1])
}

func TestStartStopMonitoring(t *testing.T) {
	source := &scriptedSource{samples: []contracts.Vitals{{CPUUsage: 10}}}
	m, controller := newTestMonitor(source)

	m.StartMonitoring(10 * time.Millisecond)
	require.Eventually(t, func() bool {
		return len(controller.vuLevels()) == 2
	}, time.Second, 5*time.Millisecond)
	m.StopMonitoring()
	m.StopMonitoring() // stopping twice is a no-op
}
