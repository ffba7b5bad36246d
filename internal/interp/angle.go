package interp

import "math"

// FullTurn is the period of a cyclic rotation, in degrees.
const FullTurn = 360.0

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(a float64) float64 {
	r := math.Mod(a, FullTurn)
	if r < 0 {
		r += FullTurn
	}
	// -1e-14 + 360 rounds to 360
	if r >= FullTurn {
		r = 0
	}
	return r
}

// ShortestArc normalizes both angles and moves to by a full turn when that
// makes the path from from to to cover the minor arc. Easing between the
// returned values never rotates more than 180 degrees.
func ShortestArc(from, to float64) (float64, float64) {
	from = NormalizeDegrees(from)
	to = NormalizeDegrees(to)

	if math.Abs(to-from) > FullTurn/2 {
		if to > from {
			to -= FullTurn
		} else {
			to += FullTurn
		}
	}

	return from, to
}
