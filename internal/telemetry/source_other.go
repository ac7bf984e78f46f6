//go:build !linux

package telemetry

import (
	"time"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// SystemSource has no sensor wiring outside Linux. It reports zeroed
// vitals so callers keep a uniform API across platforms.
type SystemSource struct {
	log contracts.Logger
}

func NewSystemSource(log contracts.Logger) *SystemSource {
	log.Warn("system telemetry is only implemented on linux, reporting zeros")
	return &SystemSource{log: log}
}

func (s *SystemSource) Vitals() (contracts.Vitals, error) {
	return contracts.Vitals{Timestamp: time.Now()}, nil
}
