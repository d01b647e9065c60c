package controller

import "github.com/Faultbox/hopper/pkg/math"

const (
	airFrictionStopSpeed = 0.01
	airFrictionMinSpeed  = 0.1
)

func (m *Mover) updateAir(a *AirState) State {
	b, s, in := m.data.Body, m.data.Settings, m.data.Input

	var next State = a

	a.CoyoteCountdown -= m.dt
	if a.CoyoteCountdown < 0 {
		a.CoyoteCountdown = 0
	}

	// Releasing jump early cuts the rise once.
	if a.Jump == JumpNormal && b.Velocity.Y > 0 && !in.Jump.Fired() {
		b.Velocity.Y /= 2
		a.Jump = JumpHalved
	}
	if a.Jump != JumpNone && b.Velocity.Y <= 0 {
		a.Jump = JumpNone
	}

	if s.WallGrabEnabled && in.WallGrab.Fired() {
		if normal, ok := m.tryWallGrab(); ok {
			return &WallGrabState{WallNormal: normal, SavedAir: *a}
		}
	}

	if s.SlamEnabled && in.Slide.Started() {
		return &SlamState{}
	}

	if s.DashEnabled && !a.Dashed && in.Dash.Started() {
		a.Dashed = true
		m.dash()
	}

	if in.Jump.Started() {
		switch {
		case a.AirJumps < s.AirJumps && a.CoyoteCountdown <= 0:
			a.AirJumps++
			m.airJump(a)
			m.emit(Signal{Kind: SignalAirJump})
		case a.CoyoteCountdown > 0:
			next = m.groundJump(a)
			m.emit(Signal{Kind: SignalCoyoteTimeJump})
		}
	}

	m.airMove()
	m.applyVelocity(false, nil)
	m.airFriction()
	return next
}

func (m *Mover) dash() {
	b, s := m.data.Body, m.data.Settings

	dir := b.Facing.Forward()
	boost := s.DashVelocity - b.Velocity.Horizontal().SpeedTowards(dir)
	if boost > 0 {
		b.Velocity = b.Velocity.Add(dir.Scale(boost))
	}
	b.Velocity.Y = impulse(s.Gravity, s.DashHeight)
}

func (m *Mover) airJump(a *AirState) {
	b, s := m.data.Body, m.data.Settings

	b.Velocity.Y = impulse(s.Gravity, s.Jump)
	a.Jump = JumpNormal

	dir, ok := m.data.Input.MoveDir().TryNormalize()
	if !ok {
		return
	}
	boost := s.AirJumpForwardBoost - b.Velocity.Horizontal().SpeedTowards(dir)
	if boost > 0 {
		b.Velocity = b.Velocity.Add(dir.Scale(boost))
	}
}

// airMove accelerates toward the input direction without pushing past the
// air speed cap in that direction.
func (m *Mover) airMove() {
	b, s := m.data.Body, m.data.Settings

	dir, ok := m.data.Input.MoveDir().TryNormalize()
	if !ok {
		return
	}
	add := s.AirSpeed - b.Velocity.Horizontal().SpeedTowards(dir)
	if add <= 0 {
		return
	}
	if limit := s.AirAccel * m.dt; add > limit {
		add = limit
	}
	b.Velocity = b.Velocity.Add(dir.Scale(add))
}

func (m *Mover) airFriction() {
	b, s := m.data.Body, m.data.Settings

	h := b.Velocity.XZ()
	speed := h.Length()
	if speed < airFrictionStopSpeed {
		b.Velocity.X, b.Velocity.Z = 0, 0
		return
	}

	remove := s.AirFriction * max(speed, airFrictionMinSpeed) * m.dt
	h = h.Scale(max(speed-remove, 0) / speed)
	b.Velocity.X, b.Velocity.Z = h.X, h.Y
}

var wallProbeDirs = [...]math.Vec3{math.Right, math.Left, math.Forward, math.Back}

// tryWallGrab looks for a grabbable wall next to the body. It prefers the
// wall the character faces and nudges the body toward it.
func (m *Mover) tryWallGrab() (math.Vec3, bool) {
	b, s := m.data.Body, m.data.Settings

	facing := b.Facing.Forward()
	hvel := b.Velocity.Horizontal()

	var (
		bestDir, bestNormal math.Vec3
		bestInfluence       float32
		found               bool
	)
	for _, dir := range wallProbeDirs {
		hit, ok := m.queries.CastShape(m.data.Shape, b.Position, dir, s.WallGrabMaxWallDistance, m.filter)
		if !ok {
			continue
		}
		normal, ok := hit.Normal.TryNormalize()
		if !ok {
			continue
		}
		if normal.Y < s.WallGrabMinNormal || normal.Y > s.WallGrabMaxNormal {
			continue
		}
		if hvel.SpeedTowards(normal) > s.WallGrabMaxAwayVelocity {
			continue
		}

		influence := facing.SpeedTowards(normal.Neg())
		if !found || influence > bestInfluence {
			bestDir, bestNormal, bestInfluence, found = dir, normal, influence, true
		}
	}
	if !found {
		return math.Vec3{}, false
	}

	saved := b.Velocity
	b.Velocity = bestDir.Scale(s.WallGrabMaxWallDistance)
	m.applyVelocity(false, nil)
	b.Velocity = saved

	return bestNormal, true
}
