package math

import "math"

const twoPi = 2 * math.Pi

// Angle is a radian value kept in [-Pi, Pi).
type Angle struct {
	rad float32
}

// NewAngle wraps radians into [-Pi, Pi).
func NewAngle(radians float32) Angle {
	return Angle{rad: wrap(radians)}
}

// Get returns the wrapped radians.
func (a Angle) Get() float32 {
	return a.rad
}

// Degrees returns the wrapped angle in degrees.
func (a Angle) Degrees() float32 {
	return a.rad * 180 / math.Pi
}

// Add returns a + other, wrapped.
func (a Angle) Add(other Angle) Angle {
	return Angle{rad: wrap(a.rad + other.rad)}
}

// Sub returns a - other, wrapped.
func (a Angle) Sub(other Angle) Angle {
	return Angle{rad: wrap(a.rad - other.rad)}
}

// Diff returns the shortest signed distance from other to a, in [-Pi, Pi).
func (a Angle) Diff(other Angle) float32 {
	return wrap(a.rad - other.rad)
}

// Forward returns the horizontal unit vector the angle points along:
// (sin a, 0, cos a). Zero faces +Z.
func (a Angle) Forward() Vec3 {
	d := Vec2FromAngle(a.rad).Swap()
	return d.XZ(0)
}

// wrap works in float64 so large inputs keep their precision until the
// final conversion.
func wrap(radians float32) float32 {
	r := math.Mod(float64(radians)+math.Pi, twoPi)
	if r < 0 {
		r += twoPi
	}
	out := float32(r - math.Pi)
	// float32 rounding can land exactly on +Pi.
	if out >= math.Pi {
		out = -math.Pi
	}
	return out
}
