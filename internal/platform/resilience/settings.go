package resilience

import "time"

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenProbes   = 2
)

// BreakerSettings configures a CircuitBreaker. Zero values fall back to the
// package defaults; Enabled is only read by callers deciding whether to wrap.
type BreakerSettings struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Enabled:          true,
		FailureThreshold: defaultFailureThreshold,
		OpenTimeout:      defaultOpenTimeout,
		HalfOpenProbes:   defaultHalfOpenProbes,
	}
}

// WithDefaults fills every unset or out-of-range field.
func (s BreakerSettings) WithDefaults() BreakerSettings {
	if s.FailureThreshold < 1 {
		s.FailureThreshold = defaultFailureThreshold
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = defaultOpenTimeout
	}
	if s.HalfOpenProbes < 1 {
		s.HalfOpenProbes = defaultHalfOpenProbes
	}
	return s
}
