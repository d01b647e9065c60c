package collision

import (
	gomath "math"

	"github.com/Faultbox/hopper/pkg/math"
)

// parallelEpsilon is the direction component below which an axis is treated
// as parallel to the slab.
const parallelEpsilon = 1e-9

// ray is a point moving along a unit direction. Sweeping a box against a box
// reduces to casting a ray against the Minkowski-expanded target.
type ray struct {
	origin    [3]float32
	direction [3]float32
}

func newRay(origin, dir math.Vec3) ray {
	return ray{
		origin:    [3]float32{origin.X, origin.Y, origin.Z},
		direction: [3]float32{dir.X, dir.Y, dir.Z},
	}
}

// intersect runs a slab test against box. It returns the entry distance and
// the face normal that was crossed. Touching faces do not count as contact,
// and a ray that starts inside the box only reports a hit at distance zero
// when it is moving deeper.
func (r ray) intersect(box AABB) (t float32, normal math.Vec3, hit bool) {
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	axis := -1

	for i := 0; i < 3; i++ {
		o, d := r.origin[i], r.direction[i]
		if abs(d) < parallelEpsilon {
			if o <= lo[i] || o >= hi[i] {
				return 0, math.Vec3{}, false
			}
			continue
		}
		t1 := (lo[i] - o) / d
		t2 := (hi[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if axis < 0 || tmax <= tmin || tmax <= 0 {
		return 0, math.Vec3{}, false
	}

	if tmin < 0 {
		n := r.escapeNormal(lo, hi)
		if n.Dot(r.dir()) >= 0 {
			return 0, math.Vec3{}, false
		}
		return 0, n, true
	}

	var n [3]float32
	if r.direction[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return tmin, math.Vec3{X: n[0], Y: n[1], Z: n[2]}, true
}

// escapeNormal returns the normal of the face closest to the origin, for a
// ray that starts inside the box.
func (r ray) escapeNormal(lo, hi [3]float32) math.Vec3 {
	best := float32(gomath.MaxFloat32)
	var n [3]float32
	for i := 0; i < 3; i++ {
		o := r.origin[i]
		if d := o - lo[i]; d < best {
			best = d
			n = [3]float32{}
			n[i] = -1
		}
		if d := hi[i] - o; d < best {
			best = d
			n = [3]float32{}
			n[i] = 1
		}
	}
	return math.Vec3{X: n[0], Y: n[1], Z: n[2]}
}

func (r ray) dir() math.Vec3 {
	return math.Vec3{X: r.direction[0], Y: r.direction[1], Z: r.direction[2]}
}

// contactPoint returns the point on the hit surface for a box of the given
// half extents whose centre stopped at centre.
func contactPoint(centre, normal, half math.Vec3) math.Vec3 {
	return centre.Sub(math.Vec3{
		X: normal.X * half.X,
		Y: normal.Y * half.Y,
		Z: normal.Z * half.Z,
	})
}
