package controller

const (
	overspeedMargin = 0.5
	overspeedDecay  = 1.5
	slideJumpBoost  = 1.5
)

func (m *Mover) updateGrounded(g *GroundedState) State {
	b, s, in := m.data.Body, m.data.Settings, m.data.Input

	coyoteFriction := g.FrictionTimer < s.CoyoteFriction
	if coyoteFriction {
		g.FrictionTimer += m.dt
	}

	b.Velocity.Y = 0
	tooFast := b.Velocity.XZ().Length() > s.RunSpeed+overspeedMargin
	want := in.MoveDir().Scale(in.SpeedModifier * s.RunSpeed)

	if tooFast {
		if !coyoteFriction {
			b.Velocity = b.Velocity.Scale(1 / overspeedDecay)
		}
		speed := b.Velocity.Length()
		if dir, ok := b.Velocity.Add(want).TryNormalize(); ok {
			b.Velocity = dir.Scale(speed)
		}
	} else {
		b.Velocity.X = want.X
		b.Velocity.Z = want.Z
	}

	m.groundMove()

	if in.Jump.Started() {
		next := m.groundJump(g)
		if tooFast && coyoteFriction {
			m.emit(Signal{Kind: SignalCoyoteFrictionJump})
		} else {
			m.emit(Signal{Kind: SignalGroundJump})
		}
		return next
	}

	if in.Slide.Started() && s.SlideEnabled {
		return &SlidingState{Direction: b.Facing.Forward().XZ()}
	}
	return g
}

func (m *Mover) updateSliding(sl *SlidingState) State {
	b, s, in := m.data.Body, m.data.Settings, m.data.Input

	var next State = sl
	sl.Timer += m.dt

	b.Velocity.X = sl.Direction.X * s.SlideSpeed
	b.Velocity.Z = sl.Direction.Y * s.SlideSpeed

	if sl.Timer >= s.SlideTime {
		next = &GroundedState{}
	}

	if in.Jump.Started() {
		b.Velocity.X *= slideJumpBoost
		b.Velocity.Z *= slideJumpBoost
		next = m.groundJump(next)
	}

	m.groundMove()
	return next
}
