// Package math provides the vector, rotation and angle types used by the controller.
package math

import "math"

// Vec2 is a 2D vector. In world space X maps to X and Y maps to Z.
type Vec2 struct {
	X, Y float32
}

// Vec2FromAngle returns the unit vector (cos a, sin a).
func Vec2FromAngle(a float32) Vec2 {
	return Vec2{float32(math.Cos(float64(a))), float32(math.Sin(float64(a)))}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// LengthSquared returns the squared magnitude.
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Swap returns (Y, X).
func (v Vec2) Swap() Vec2 {
	return Vec2{v.Y, v.X}
}

// ToAngle returns atan2(Y, X).
func (v Vec2) ToAngle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// XZ lifts v into the horizontal plane at height y.
func (v Vec2) XZ(y float32) Vec3 {
	return Vec3{v.X, y, v.Y}
}
