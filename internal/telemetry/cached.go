package telemetry

import (
	"sync"
	"time"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// DefaultCacheInterval is how long a sample stays fresh before the
// underlying source is read again.
const DefaultCacheInterval = 500 * time.Millisecond

// Cached wraps a TelemetrySource and serves the last sample until it is
// older than the configured interval. Fast render loops can poll it freely
// without hammering /proc and sysfs.
type Cached struct {
	source   contracts.TelemetrySource
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	last    contracts.Vitals
	lastErr error
	read    bool
}

// NewCached builds a caching wrapper. A non-positive interval falls back to
// DefaultCacheInterval.
func NewCached(source contracts.TelemetrySource, interval time.Duration) *Cached {
	if interval <= 0 {
		interval = DefaultCacheInterval
	}
	return &Cached{
		source:   source,
		interval: interval,
		now:      time.Now,
	}
}

func (c *Cached) Vitals() (contracts.Vitals, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.read && now.Sub(c.last.Timestamp) < c.interval {
		return c.last, c.lastErr
	}

	vitals, err := c.source.Vitals()
	vitals.Timestamp = now
	c.last = vitals
	c.lastErr = err
	c.read = true
	return vitals, err
}
