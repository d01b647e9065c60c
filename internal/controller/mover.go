// Package controller implements the platforming character controller: input
// gathering, the movement state machine and the Mover that advances one
// character per fixed tick against the level's movement queries.
package controller

import (
	stdmath "math"

	"github.com/Faultbox/hopper/internal/collision"
	"github.com/Faultbox/hopper/pkg/math"
)

const (
	skinWidth           = 0.01
	groundProbeDistance = 0.02
	flycamSpeed         = 20
)

var groundPlanes = []math.Vec3{math.Up}

// Body is the mutable kinematic part of a character.
type Body struct {
	Position math.Vec3
	Velocity math.Vec3
	Facing   math.Angle
}

// MovementData is everything a Mover needs for one character for one tick.
type MovementData struct {
	ID       collision.BodyID
	Body     *Body
	Input    *Input
	Settings *Settings
	Shape    collision.Box
}

// Mover advances a single character by one tick. Create one per character
// per tick; it holds no state between ticks.
type Mover struct {
	data    MovementData
	queries collision.Queries
	signals SignalSink
	filter  collision.Filter
	dt      float32
}

// NewMover panics if the queries or any part of data is missing. signals may
// be nil.
func NewMover(q collision.Queries, data MovementData, signals SignalSink, dt float32) *Mover {
	if q == nil {
		panic("controller: nil collision queries")
	}
	if data.Body == nil || data.Input == nil || data.Settings == nil {
		panic("controller: incomplete movement data")
	}
	return &Mover{
		data:    data,
		queries: q,
		signals: signals,
		filter:  collision.MovementFilter(data.ID),
		dt:      dt,
	}
}

// Step runs one tick and returns the state that is active afterwards. The
// returned state may be the same variant, mutated in place.
func (m *Mover) Step(state State) State {
	if m.data.Settings.Flycam {
		m.flycam()
		return state
	}

	m.halfGravity(state)
	state = m.updateState(state)
	m.snapToFloor(state)
	m.halfGravity(state)
	return m.checkGrounded(state)
}

func (m *Mover) updateState(state State) State {
	switch s := state.(type) {
	case *GroundedState:
		return m.updateGrounded(s)
	case *AirState:
		return m.updateAir(s)
	case *SlidingState:
		return m.updateSliding(s)
	case *SlamState:
		return m.updateSlam(s)
	case *WallGrabState:
		return m.updateWallGrab(s)
	default:
		panic("controller: unknown state variant")
	}
}

func (m *Mover) emit(s Signal) {
	if m.signals != nil {
		m.signals.Emit(s)
	}
}

func (m *Mover) flycam() {
	in := m.data.Input
	dir := math.Vec3{X: in.Movement.X, Z: in.Movement.Y}
	if in.Jump.Fired() {
		dir.Y++
	}
	if in.Slide.Fired() {
		dir.Y--
	}
	b := m.data.Body
	b.Position = b.Position.Add(dir.Scale(m.dt * flycamSpeed))
}

func (m *Mover) halfGravity(state State) {
	b, s := m.data.Body, m.data.Settings
	if !state.Grounded() {
		b.Velocity.Y -= s.Gravity * 0.5 * m.dt
	}
	if b.Velocity.Y < -s.TerminalVelocity {
		b.Velocity.Y = -s.TerminalVelocity
	}
}

func (m *Mover) snapToFloor(state State) {
	if !state.Grounded() {
		return
	}
	b, s := m.data.Body, m.data.Settings

	offset := m.queries.Depenetrate(m.data.Shape, b.Position, m.filter)
	hit, ok := m.queries.CastMove(m.data.Shape, b.Position.Add(offset), math.Down, s.FloorSnap, skinWidth, m.filter)
	if !ok || hit.Normal.Y < s.MinFloorAngle {
		return
	}

	if b.Velocity.Y < 0 {
		b.Velocity.Y = 0
	}
	b.Position = b.Position.Add(offset).Add(math.Down.Scale(hit.Distance))
}

func (m *Mover) checkGrounded(state State) State {
	b, s := m.data.Body, m.data.Settings

	grounded := false
	if b.Velocity.Y <= s.MaximumGroundedUpVelocity {
		hit, ok := m.queries.CastShape(m.data.Shape, b.Position, math.Down, groundProbeDistance, m.filter)
		grounded = ok && hit.Normal.Y > s.MinFloorAngle
	}

	switch {
	case grounded && !state.Grounded():
		return &GroundedState{}
	case !grounded && state.Grounded():
		return airWithCoyote(s)
	}
	return state
}

// groundMove moves along the ground, stepping up when that gets further.
func (m *Mover) groundMove() {
	b, s := m.data.Body, m.data.Settings

	startPos, startVel := b.Position, b.Velocity
	if m.applyVelocity(true, nil) {
		return
	}
	groundPos, groundVel := b.Position, b.Velocity

	// Up, forward, then down.
	b.Position, b.Velocity = startPos, startVel

	lift := s.FloorSnap
	if hit, ok := m.queries.CastMove(m.data.Shape, b.Position, math.Up, s.FloorSnap, skinWidth, m.filter); ok {
		lift = hit.Distance
	}
	b.Position.Y += lift

	m.applyVelocity(false, nil)

	hit, ok := m.queries.CastMove(m.data.Shape, b.Position, math.Down, s.Step, skinWidth, m.filter)
	switch {
	case !ok:
		b.Position.Y -= s.Step
	case hit.Normal.Y < s.MinFloorAngle:
		// Stepping would land on something that is not floor.
		b.Position, b.Velocity = groundPos, groundVel
		return
	default:
		b.Position.Y -= hit.Distance
	}

	if groundPos.Sub(startPos).LengthSquared() > b.Position.Sub(startPos).LengthSquared() {
		b.Position, b.Velocity = groundPos, groundVel
		return
	}
	b.Velocity.Y = groundVel.Y
}

// applyVelocity integrates the body's velocity for one tick and reports
// whether the move touched nothing.
func (m *Mover) applyVelocity(grounded bool, onHit func(*collision.Hit)) bool {
	b := m.data.Body

	var planes []math.Vec3
	if grounded {
		planes = groundPlanes
	}

	var cb func(*collision.Hit) collision.HitResponse
	if onHit != nil {
		cb = func(h *collision.Hit) collision.HitResponse {
			onHit(h)
			return collision.HitAccept
		}
	}

	res := m.queries.MoveAndSlide(m.data.Shape, b.Position, b.Velocity, m.dt, planes, m.filter, cb)
	b.Position = res.Position
	b.Velocity = res.Velocity
	return res.Unimpeded
}

// groundJump launches from the ground, adding the slam boost if one is
// pending, and returns the airborne state.
func (m *Mover) groundJump(state State) *AirState {
	s := m.data.Settings

	height := s.Jump
	if g, ok := state.(*GroundedState); ok && g.JumpBoost {
		height += s.SlamJumpBoost
	}
	m.data.Body.Velocity.Y = impulse(s.Gravity, height)
	return &AirState{Jump: JumpNormal}
}

// impulse is the vertical speed that reaches height under gravity.
func impulse(gravity, height float32) float32 {
	return float32(stdmath.Sqrt(float64(2 * gravity * height)))
}
