package timeline

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Easing names a progress curve.
type Easing string

const (
	Linear    Easing = "linear"
	EaseOut   Easing = "ease-out"
	EaseInOut Easing = "ease-in-out"
	// Spring overshoots slightly before settling, like a damped spring.
	Spring Easing = "spring"
)

// springCurve samples a harmonica spring released from 0 towards 1.
var springCurve = func() []float64 {
	const samples = 120
	s := harmonica.NewSpring(harmonica.FPS(samples), 12.0, 0.55)
	curve := make([]float64, samples+1)
	var pos, vel float64
	for i := 1; i <= samples; i++ {
		pos, vel = s.Update(pos, vel, 1)
		curve[i] = pos
	}
	curve[samples] = 1
	return curve
}()

// Apply maps linear progress p in [0,1] through the curve.
func (e Easing) Apply(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	switch e {
	case EaseOut:
		q := 1 - p
		return 1 - q*q*q
	case EaseInOut:
		if p < 0.5 {
			return 4 * p * p * p
		}
		return 1 - math.Pow(-2*p+2, 3)/2
	case Spring:
		x := p * float64(len(springCurve)-1)
		i := int(x)
		f := x - float64(i)
		return springCurve[i] + (springCurve[i+1]-springCurve[i])*f
	default:
		return p
	}
}

// CSS is the closest CSS timing function.
func (e Easing) CSS() string {
	switch e {
	case EaseOut:
		return "cubic-bezier(0.33, 1, 0.68, 1)"
	case EaseInOut:
		return "cubic-bezier(0.65, 0, 0.35, 1)"
	case Spring:
		return "cubic-bezier(0.34, 1.56, 0.64, 1)"
	default:
		return "linear"
	}
}

// Valid reports whether e is a known easing.
func (e Easing) Valid() bool {
	switch e {
	case Linear, EaseOut, EaseInOut, Spring:
		return true
	}
	return false
}
