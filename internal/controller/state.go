package controller

import "github.com/Faultbox/hopper/pkg/math"

// State is the active movement mode. Exactly one variant is active; a
// transition replaces the variant instead of editing across variants.
//
// The variants are *GroundedState, *AirState, *SlidingState, *SlamState
// and *WallGrabState.
type State interface {
	// Grounded reports whether gravity is suspended and floor snapping runs.
	Grounded() bool
	// FacingLocked reports whether input may turn the character.
	FacingLocked() bool
	// Name is a short lowercase label for logs and animation selection.
	Name() string

	state()
}

// InitialState is the state a new controller starts in.
func InitialState() State {
	return &AirState{}
}

// JumpState tracks variable jump height.
type JumpState uint8

const (
	JumpNone JumpState = iota
	JumpNormal
	JumpHalved
)

func (j JumpState) String() string {
	switch j {
	case JumpNormal:
		return "normal"
	case JumpHalved:
		return "halved"
	default:
		return "none"
	}
}

type GroundedState struct {
	// FrictionTimer is the time spent on the ground, counted until it
	// reaches the coyote friction window.
	FrictionTimer float32
	// JumpBoost adds the slam jump boost to the next ground jump.
	JumpBoost bool
}

type AirState struct {
	// AirJumps is the number of air jumps used this airborne period.
	AirJumps        uint8
	Dashed          bool
	Jump            JumpState
	CoyoteCountdown float32
}

type SlidingState struct {
	Direction math.Vec2
	Timer     float32
}

type SlamState struct {
	Timer float32
}

type WallGrabState struct {
	WallNormal math.Vec3
	// SavedAir is restored when the grab ends.
	SavedAir AirState
}

func (*GroundedState) Grounded() bool { return true }
func (*AirState) Grounded() bool      { return false }
func (*SlidingState) Grounded() bool  { return true }
func (*SlamState) Grounded() bool     { return false }
func (*WallGrabState) Grounded() bool { return false }

func (*GroundedState) FacingLocked() bool { return false }
func (*AirState) FacingLocked() bool      { return false }
func (*SlidingState) FacingLocked() bool  { return true }
func (*SlamState) FacingLocked() bool     { return true }
func (*WallGrabState) FacingLocked() bool { return true }

func (*GroundedState) Name() string { return "grounded" }
func (*AirState) Name() string      { return "air" }
func (*SlidingState) Name() string  { return "sliding" }
func (*SlamState) Name() string     { return "slam" }
func (*WallGrabState) Name() string { return "wall_grab" }

func (*GroundedState) state() {}
func (*AirState) state()      {}
func (*SlidingState) state()  {}
func (*SlamState) state()     {}
func (*WallGrabState) state() {}

func airWithCoyote(s *Settings) *AirState {
	return &AirState{CoyoteCountdown: s.CoyoteTime}
}
