package controller

import (
	stdmath "math"

	"github.com/Faultbox/hopper/internal/collision"
	"github.com/Faultbox/hopper/pkg/math"
)

// StandingShape is the player collider outside of slides.
func StandingShape() collision.Box {
	return collision.NewBox(PlayerWidth, PlayerHeight, PlayerWidth)
}

// SlidingShape is the half-height collider used while sliding.
func SlidingShape() collision.Box {
	return collision.NewBox(PlayerWidth, PlayerHeight/2, PlayerWidth)
}

// ResizeCollider swaps the collider when a slide starts or ends, keeping the
// feet where they were. It returns false when nothing changes.
func ResizeCollider(wasSliding, sliding bool, pos math.Vec3) (collision.Box, math.Vec3, bool) {
	switch {
	case !wasSliding && sliding:
		return SlidingShape(), pos.Add(math.Vec3{Y: -PlayerHeight / 4}), true
	case wasSliding && !sliding:
		return StandingShape(), pos.Add(math.Vec3{Y: PlayerHeight / 4}), true
	}
	return collision.Box{}, pos, false
}

// IsSliding reports whether state is the slide variant.
func IsSliding(state State) bool {
	_, ok := state.(*SlidingState)
	return ok
}

// ModelRotation is the orientation a renderer gives the player model for
// the given facing.
func ModelRotation(facing math.Angle) math.Quat {
	return math.QuatFromAxisAngle(math.Up, facing.Get()-stdmath.Pi/2)
}

// SwordBounce launches an airborne character upward after a sword strike
// and restores its air abilities. It reports whether the bounce applied.
func SwordBounce(state State, velocity *math.Vec3, s *Settings) bool {
	a, ok := state.(*AirState)
	if !ok || velocity.Y >= s.MinSwordBounce {
		return false
	}

	a.AirJumps = 0
	a.Dashed = false
	a.Jump = JumpNone
	velocity.Y = max(-velocity.Y, s.MinSwordBounce)
	return true
}
