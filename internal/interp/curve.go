package interp

import "github.com/go-gl/mathgl/mgl64"

// EaseInOut is a cubic Hermite curve with zero tangents at both keys: it
// starts and ends at rest. Outside [T0, T1] it holds the nearest key value.
type EaseInOut struct {
	T0, V0 float64
	T1, V1 float64
}

// Evaluate returns the curve value at time t.
func (c EaseInOut) Evaluate(t float64) float64 {
	if t <= c.T0 {
		return c.V0
	}
	if t >= c.T1 {
		return c.V1
	}

	u := mgl64.Clamp((t-c.T0)/(c.T1-c.T0), 0, 1)
	return c.V0 + (c.V1-c.V0)*u*u*(3-2*u)
}
