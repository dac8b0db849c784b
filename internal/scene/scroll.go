package scene

import (
	"math"
	"sync/atomic"
)

// ScrollSignal carries the hosting page's vertical scroll offset into a scene.
// There is one writer (the viewport bridge) and any number of readers.
type ScrollSignal struct {
	bits atomic.Uint64
}

// Set stores v. Negative and non-finite offsets are stored as 0.
func (s *ScrollSignal) Set(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		v = 0
	}
	s.bits.Store(math.Float64bits(v))
}

// Load returns the last stored offset.
func (s *ScrollSignal) Load() float64 {
	return math.Float64frombits(s.bits.Load())
}

// ScrollConfig maps the scroll signal to a world-space vertical offset.
type ScrollConfig struct {
	Scale float32 `json:"scale"`
	// Limit caps the offset; zero means unbounded.
	Limit float32 `json:"limit"`
}

// Offset returns min(scroll*Scale, Limit). It never decreases as scroll grows.
func (c ScrollConfig) Offset(scroll float64) float32 {
	if scroll <= 0 || c.Scale <= 0 {
		return 0
	}
	o := float32(scroll) * c.Scale
	if c.Limit > 0 && o > c.Limit {
		return c.Limit
	}
	return o
}
