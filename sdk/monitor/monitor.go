// Package monitor renders host vitals on the controller: jog rings show
// CPU, memory and temperature levels, the BPM screens show temperatures,
// and threshold crossings flash the VU meters in an alternating cadence.
package monitor

import (
	"math"
	"sync"
	"time"

	"github.com/leandrodaf/mixtrack/internal/telemetry"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// defaultTempMax scales temperatures onto the 0-100 ring range.
const defaultTempMax = 80.0

// DefaultUpdateInterval is the telemetry sampling cadence.
const DefaultUpdateInterval = time.Second

// Controller is the slice of the device client the monitor drives.
type Controller interface {
	SetRingPercentage(deck contracts.Deck, ring contracts.RingType, percent float64)
	SetVUMeter(deck contracts.Deck, level float64)
	SetBPMDisplay(deck contracts.Deck, bpm float64)
	SetCurrentTimeDisplay(deck contracts.Deck, now time.Time)
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithSource replaces the default system telemetry source.
func WithSource(source contracts.TelemetrySource) Option {
	return func(m *Monitor) {
		m.source = source
	}
}

// WithLogger sets the monitor's logger.
func WithLogger(log contracts.Logger) Option {
	return func(m *Monitor) {
		m.log = log
	}
}

// WithThresholds overrides the default alert thresholds.
func WithThresholds(thresholds contracts.AlertThresholds) Option {
	return func(m *Monitor) {
		m.thresholds = thresholds
	}
}

// WithCacheInterval bounds how often the underlying sensors are read. A
// negative interval disables the staleness cache entirely; zero keeps the
// default.
func WithCacheInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		m.cacheInterval = interval
	}
}

// WithTempMax sets the temperature that maps to a full ring.
func WithTempMax(max float64) Option {
	return func(m *Monitor) {
		m.tempMax = max
	}
}

// Monitor samples a telemetry source on a fixed interval and paints the
// result onto the controller. Alerting is level-triggered: the state is
// recomputed from scratch on every sample, with no hysteresis, so a metric
// sitting exactly at its threshold toggles the state every sample.
type Monitor struct {
	controller    Controller
	source        contracts.TelemetrySource
	log           contracts.Logger
	thresholds    contracts.AlertThresholds
	tempMax       float64
	cacheInterval time.Duration

	mu        sync.Mutex
	observers map[string]contracts.AlertObserver
	flash     bool
	running   bool
	stop      chan struct{}
	done      chan struct{}
}

// New builds a monitor over the given controller. Without WithSource the
// host system source is used, wrapped in the staleness cache.
func New(controller Controller, log contracts.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		controller: controller,
		log:        log,
		thresholds: contracts.DefaultAlertThresholds(),
		tempMax:    defaultTempMax,
		observers:  make(map[string]contracts.AlertObserver),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = telemetry.NewSystemSource(m.log)
	}
	if m.cacheInterval >= 0 {
		m.source = telemetry.NewCached(m.source, m.cacheInterval)
	}
	return m
}

// Evaluate recomputes the alert state for one vitals snapshot. Crossings
// are level-triggered at or above each threshold.
func Evaluate(vitals contracts.Vitals, thresholds contracts.AlertThresholds) contracts.AlertState {
	state := contracts.AlertState{
		CPUTemp:     vitals.CPUTemp >= thresholds.CPUTemp,
		GPUTemp:     vitals.GPUTemp >= thresholds.GPUTemp,
		CPUUsage:    vitals.CPUUsage >= thresholds.CPUUsage,
		MemoryUsage: vitals.MemoryUsage >= thresholds.MemoryUsage,
		Timestamp:   vitals.Timestamp,
	}
	state.Any = state.CPUTemp || state.GPUTemp || state.CPUUsage || state.MemoryUsage
	return state
}

// StartMonitoring launches the sampling loop at the given interval. A
// non-positive interval falls back to the default.
func (m *Monitor) StartMonitoring(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	go m.loop(interval, m.stop, m.done)
	m.log.Info("system monitoring started",
		m.log.Field().Int64("interval_ms", interval.Milliseconds()))
}

// StopMonitoring halts the sampling loop and waits for it to finish.
func (m *Monitor) StopMonitoring() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stop, done := m.stop, m.done
	m.mu.Unlock()

	close(stop)
	<-done
	m.log.Info("system monitoring stopped")
}

// RegisterAlertObserver adds a named callback invoked with the full alert
// state on every sample where any alert is raised.
func (m *Monitor) RegisterAlertObserver(name string, observer contracts.AlertObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers[name] = observer
}

// UnregisterAlertObserver removes a named callback.
func (m *Monitor) UnregisterAlertObserver(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, name)
}

func (m *Monitor) loop(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.sample(time.Now())
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// sample takes one telemetry reading, recomputes the alert state, paints
// the controller and notifies observers.
func (m *Monitor) sample(now time.Time) contracts.AlertState {
	vitals, err := m.source.Vitals()
	if err != nil {
		m.log.Warn("telemetry read failed", m.log.Field().Error("error", err))
		return contracts.AlertState{Timestamp: now}
	}

	state := Evaluate(vitals, m.thresholds)
	m.render(vitals, state, now)

	if state.Any {
		for _, observer := range m.snapshotObservers() {
			observer(state)
		}
	}
	return state
}

// render paints one sample. Alerting toggles a single shared flash bit and
// flashes the rings and VU meters in an alternating deck cadence; the
// normal view maps usage onto deck 1's rings and temperatures onto deck 2's.
func (m *Monitor) render(vitals contracts.Vitals, state contracts.AlertState, now time.Time) {
	m.mu.Lock()
	if state.Any {
		m.flash = !m.flash
	} else {
		m.flash = false
	}
	flash := m.flash
	m.mu.Unlock()

	if state.Any {
		lit, dark := 100.0, 0.0
		if !flash {
			lit, dark = 0.0, 100.0
		}
		m.setRings(contracts.Deck1, lit, lit)
		m.setRings(contracts.Deck2, dark, dark)
		m.controller.SetVUMeter(contracts.Deck1, lit)
		m.controller.SetVUMeter(contracts.Deck2, dark)
	} else {
		m.setRings(contracts.Deck1, vitals.CPUUsage, vitals.MemoryUsage)
		m.setRings(contracts.Deck2, m.tempPercent(vitals.CPUTemp), m.tempPercent(vitals.GPUTemp))
		m.controller.SetVUMeter(contracts.Deck1, vitals.CPUUsage)
		m.controller.SetVUMeter(contracts.Deck2, vitals.MemoryUsage)
	}

	m.controller.SetBPMDisplay(contracts.Deck1, vitals.CPUTemp)
	m.controller.SetBPMDisplay(contracts.Deck2, vitals.GPUTemp)
	m.controller.SetCurrentTimeDisplay(contracts.Deck1, now)
	m.controller.SetCurrentTimeDisplay(contracts.Deck2, now)
}

func (m *Monitor) setRings(deck contracts.Deck, spinner, position float64) {
	m.controller.SetRingPercentage(deck, contracts.RingSpinner, spinner)
	m.controller.SetRingPercentage(deck, contracts.RingPosition, position)
}

func (m *Monitor) tempPercent(temp float64) float64 {
	return math.Min(temp*100/m.tempMax, 100)
}

func (m *Monitor) snapshotObservers() []contracts.AlertObserver {
	m.mu.Lock()
	defer m.mu.Unlock()
	observers := make([]contracts.AlertObserver, 0, len(m.observers))
	for _, observer := range m.observers {
		observers = append(observers, observer)
	}
	return observers
}
