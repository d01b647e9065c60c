package controller

import (
	"github.com/Faultbox/hopper/internal/collision"
	"github.com/Faultbox/hopper/pkg/math"
)

func (m *Mover) updateSlam(sl *SlamState) State {
	b, s := m.data.Body, m.data.Settings

	b.Velocity = math.Vec3{}
	if sl.Timer < s.SlamPause {
		sl.Timer += m.dt
	}
	if sl.Timer >= s.SlamPause {
		b.Velocity.Y = -s.SlamVelocity
	}

	var (
		impact math.Vec3
		landed bool
	)
	m.applyVelocity(false, func(h *collision.Hit) {
		if h.Normal.Y >= s.MinFloorAngle {
			impact = h.Point
			landed = true
		}
	})
	if !landed {
		return sl
	}

	m.emit(Signal{Kind: SignalSlam, Point: impact})
	next := m.checkGrounded(sl)
	if g, ok := next.(*GroundedState); ok {
		g.JumpBoost = true
	}
	return next
}

func (m *Mover) updateWallGrab(w *WallGrabState) State {
	b, s, in := m.data.Body, m.data.Settings, m.data.Input

	w.SavedAir.AirJumps = 0
	b.Velocity = math.Vec3{}
	b.Facing = math.NewAngle(math.Vec2{X: -w.WallNormal.Z, Y: -w.WallNormal.X}.ToAngle())

	if !in.WallGrab.Fired() {
		next := w.release(JumpNone)
		m.applyVelocity(false, nil)
		return next
	}

	if in.Jump.Started() {
		if b.Velocity.Y < s.WallJumpMaxVertical {
			add := impulse(s.Gravity, s.WallJumpAddVertical)
			if headroom := s.WallJumpMaxVertical - b.Velocity.Y; add > headroom {
				add = headroom
			}
			b.Velocity.Y += add
		}
		b.Velocity = b.Velocity.Add(w.WallNormal.Scale(s.WallJumpAddHorizontal))

		next := w.release(JumpNormal)
		m.applyVelocity(false, nil)
		return next
	}

	// Stay pressed against the wall.
	offset := m.queries.Depenetrate(m.data.Shape, b.Position, m.filter)
	into := w.WallNormal.Neg()
	hit, ok := m.queries.CastMove(m.data.Shape, b.Position.Add(offset), into, s.WallGrabMaxWallDistance, skinWidth, m.filter)
	if !ok {
		next := w.release(JumpNone)
		m.applyVelocity(false, nil)
		return next
	}
	b.Position = b.Position.Add(offset).Add(into.Scale(hit.Distance))
	return w
}

// release leaves the wall, keeping the saved air counters.
func (w *WallGrabState) release(jump JumpState) *AirState {
	return &AirState{
		AirJumps: w.SavedAir.AirJumps,
		Dashed:   w.SavedAir.Dashed,
		Jump:     jump,
	}
}
