// SPDX-License-Identifier: EPL-2.0

package volume

import "math"

// Floor is the quietest linear volume ever handed to a backend (-120 dB).
// It also floors every value before conversion to decibels.
const Floor = 0.000001

// ToDB converts a linear amplitude to decibels. v is clamped to Floor so the
// result is never -Inf.
func ToDB(v float64) float64 {
	return 20 * math.Log10(math.Max(v, Floor))
}

// FromDB converts decibels back to a linear amplitude.
func FromDB(db float64) float64 {
	return math.Pow(10, db/20)
}

// Shift moves v by -deltaDB decibels: FromDB(ToDB(v) - deltaDB). A positive
// delta makes v quieter.
//
// Above Floor it is equivalent to multiplying v by FromDB(-deltaDB), which
// is what lets a layer change be applied to a volume that already bakes in
// other layers. Below Floor, v counts as Floor, so raising a muted layer
// brings a silenced volume back up instead of leaving it at -Inf.
func Shift(v, deltaDB float64) float64 {
	return FromDB(ToDB(v) - deltaDB)
}

// Perceived maps a raw fader position in [0,1] onto raw^exponent.
func Perceived(raw, exponent float64) float64 {
	return math.Pow(Clamp(raw, 0, 1), exponent)
}

// EaseIn is the accelerating fade curve progress^exponent.
func EaseIn(progress, exponent float64) float64 {
	return math.Pow(Clamp(progress, 0, 1), exponent)
}

// EaseOut is the decelerating mirror of EaseIn: 1-(1-progress)^exponent.
func EaseOut(progress, exponent float64) float64 {
	return 1 - math.Pow(1-Clamp(progress, 0, 1), exponent)
}

// Clamp limits v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v >= lo {
		return v
	}
	return lo
}

// Lerp interpolates linearly from a to b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
