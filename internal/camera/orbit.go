// Package camera provides the orbit camera whose yaw orients player input.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hopper/pkg/math"
)

const (
	zoomSpeed   = 1.5
	minDistance = 4.0
	maxDistance = 8.0
	panSpeed    = 90 * gomath.Pi / 180
	centerSpeed = 8.0
	pitch       = 26 * gomath.Pi / 180
)

// Orbit circles the player. Yaw is the angle input gathering uses; the
// visible yaw catches up to it while recentering.
type Orbit struct {
	Yaw      math.Angle
	Zoom     float32
	Distance float32

	visual      math.Angle
	visualSpeed float32
}

// NewOrbit creates an orbit camera at the closest zoom.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:    minDistance,
		visualSpeed: 1,
	}
}

// VisualYaw is the yaw the camera is currently drawn at.
func (c *Orbit) VisualYaw() math.Angle {
	return c.visual
}

// Centering reports whether the camera is still turning toward a recenter
// target.
func (c *Orbit) Centering() bool {
	return c.visual != c.Yaw
}

// HandleStick pans with the stick's X and zooms with its Y. It is ignored
// while recentering.
func (c *Orbit) HandleStick(stick math.Vec2, dt float32) {
	if c.Centering() {
		return
	}

	c.Zoom = clamp(c.Zoom+zoomSpeed*-stick.Y*dt, 0, 1)
	c.Distance = minDistance + (maxDistance-minDistance)*c.Zoom

	c.Yaw = c.Yaw.Add(math.NewAngle(panSpeed * stick.X * dt))
	c.visual = c.Yaw
}

// Center snaps the input yaw behind facing and starts turning the visible
// camera toward it.
func (c *Orbit) Center(facing math.Angle) {
	c.Yaw = facing
	c.visualSpeed = c.Yaw.Diff(c.visual) * centerSpeed
}

// Update advances recentering.
func (c *Orbit) Update(dt float32) {
	if !c.Centering() {
		return
	}

	old := c.visual.Get()
	next := old + c.visualSpeed*dt
	if old == next {
		c.visual = c.Yaw
		return
	}

	lo, hi := min(old, next), max(old, next)
	target := c.Yaw.Get()
	for _, t := range [...]float32{target, target + 2*gomath.Pi, target - 2*gomath.Pi} {
		if t >= lo && t <= hi {
			c.visual = c.Yaw
			return
		}
	}
	c.visual = math.NewAngle(next)
}

// Offset is the camera position relative to its look-at target.
func (c *Orbit) Offset() math.Vec3 {
	tilt := math.QuatFromAxisAngle(math.Right, pitch)
	rot := math.QuatFromAxisAngle(math.Up, c.visual.Get()).Mul(tilt)
	return rot.Rotate(math.Back.Scale(c.Distance))
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
