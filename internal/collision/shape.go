package collision

import (
	"fmt"

	"github.com/Faultbox/hopper/pkg/math"
)

// Box is an axis-aligned box collider centred on its owner's position.
type Box struct {
	HalfExtents math.Vec3
}

// NewBox creates a box from full width, height and depth.
func NewBox(width, height, depth float32) Box {
	return Box{HalfExtents: math.Vec3{X: width / 2, Y: height / 2, Z: depth / 2}}
}

// Height returns the full height of the box.
func (b Box) Height() float32 {
	return b.HalfExtents.Y * 2
}

// Validate checks that all extents are positive.
func (b Box) Validate() error {
	h := b.HalfExtents
	if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
		return fmt.Errorf("box half extents must be positive, got %v", h)
	}
	return nil
}

// At returns the world-space bounds of the box centred at pos.
func (b Box) At(pos math.Vec3) AABB {
	return AABB{Min: pos.Sub(b.HalfExtents), Max: pos.Add(b.HalfExtents)}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	box := AABB{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// Expand grows the box by half on every side (Minkowski sum with a box).
func (a AABB) Expand(half math.Vec3) AABB {
	return AABB{Min: a.Min.Sub(half), Max: a.Max.Add(half)}
}

// Overlaps reports whether the boxes intersect with positive volume.
// Boxes that only touch do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

// pushOut returns the smallest axis-aligned translation that moves a out of b.
func pushOut(a, b AABB) math.Vec3 {
	left := a.Max.X - b.Min.X
	right := b.Max.X - a.Min.X
	down := a.Max.Y - b.Min.Y
	up := b.Max.Y - a.Min.Y
	back := a.Max.Z - b.Min.Z
	front := b.Max.Z - a.Min.Z

	px := right
	if left < right {
		px = -left
	}
	py := up
	if down < up {
		py = -down
	}
	pz := front
	if back < front {
		pz = -back
	}

	ax, ay, az := abs(px), abs(py), abs(pz)
	switch {
	case ay <= ax && ay <= az:
		return math.Vec3{Y: py}
	case ax <= az:
		return math.Vec3{X: px}
	default:
		return math.Vec3{Z: pz}
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
