package midiport

import (
	"sync"
	"time"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// Record is one outbound frame with its submission time, kept by the
// in-memory transport so tests can assert on write timing.
type Record struct {
	Frame contracts.Frame
	At    time.Time
}

// MemoryTransport is an in-memory contracts.Transport. Outbound frames are
// recorded; inbound frames are injected by the test or embedder. It accepts
// any port pattern.
type MemoryTransport struct {
	mu      sync.Mutex
	open    bool
	records []Record
	inbound chan contracts.Frame
}

// NewMemoryTransport creates an unopened in-memory transport.
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{
		inbound: make(chan contracts.Frame, defaultBufferDepth),
	}
}

// Open marks the transport connected; every pattern matches.
func (m *MemoryTransport) Open(pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	return nil
}

// Send records one outbound frame.
func (m *MemoryTransport) Send(frame contracts.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return ErrNotConnected
	}
	m.records = append(m.records, Record{Frame: frame, At: time.Now()})
	return nil
}

// Poll waits up to timeout for one injected frame.
func (m *MemoryTransport) Poll(timeout time.Duration) (contracts.Frame, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case frame := <-m.inbound:
		return frame, true
	case <-timer.C:
		return contracts.Frame{}, false
	}
}

// Connected reports whether Open has been called.
func (m *MemoryTransport) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Close marks the transport disconnected. Frames already recorded stay
// readable.
func (m *MemoryTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	return nil
}

// Inject queues an inbound frame for the next Poll.
func (m *MemoryTransport) Inject(frame contracts.Frame) {
	m.inbound <- frame
}

// Records returns a copy of every outbound frame with timing.
func (m *MemoryTransport) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Sent returns a copy of every outbound frame in submission order.
func (m *MemoryTransport) Sent() []contracts.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]contracts.Frame, len(m.records))
	for i, r := range m.records {
		out[i] = r.Frame
	}
	return out
}

// Reset discards the recorded outbound frames.
func (m *MemoryTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}
