package contracts

import "time"

// Vitals is a snapshot of host metrics. Usage values are percentages in
// [0,100]; temperatures are degrees Celsius.
type Vitals struct {
	CPUUsage    float64
	MemoryUsage float64
	CPUTemp     float64
	GPUTemp     float64
	Timestamp   time.Time
}

// TelemetrySource produces vitals snapshots. Sourcing strategy (sensor
// enumeration, thermal-zone files, external tools) is entirely the
// implementation's concern.
type TelemetrySource interface {
	Vitals() (Vitals, error)
}

// AlertThresholds holds the inclusive lower bounds above which each metric
// is considered alerting (metric >= threshold fires).
type AlertThresholds struct {
	CPUTemp     float64
	GPUTemp     float64
	CPUUsage    float64
	MemoryUsage float64
}

// DefaultAlertThresholds returns the stock thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		CPUTemp:     75.0,
		GPUTemp:     80.0,
		CPUUsage:    80.0,
		MemoryUsage: 90.0,
	}
}

// AlertState is the per-metric alert evaluation of one vitals sample. It is
// recomputed wholesale on every sample; there is no hysteresis memory.
type AlertState struct {
	CPUTemp     bool
	GPUTemp     bool
	CPUUsage    bool
	MemoryUsage bool
	Any         bool
	Timestamp   time.Time
}

// AlertObserver receives the full alert state of samples where at least one
// metric is alerting.
type AlertObserver func(state AlertState)
