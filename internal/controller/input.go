package controller

import (
	stdmath "math"

	"github.com/Faultbox/hopper/pkg/math"
)

// ActionEvents are the per-tick bits of a single input action.
type ActionEvents uint8

const (
	// ActionStarted is set on the tick the action was pressed.
	ActionStarted ActionEvents = 1 << iota
	// ActionFired is set on every tick the action is held.
	ActionFired
	// ActionCompleted is set on the tick the action was released.
	ActionCompleted
)

func (e ActionEvents) Started() bool   { return e&ActionStarted != 0 }
func (e ActionEvents) Fired() bool     { return e&ActionFired != 0 }
func (e ActionEvents) Completed() bool { return e&ActionCompleted != 0 }

// Speed tiers.
const (
	speedStill = 0
	speedWalk  = 0.5
	speedRun   = 1

	walkThreshold = 0.3
	runThreshold  = 0.7
)

// RawInput is what the input layer reports for one tick.
type RawInput struct {
	// Move is the stick vector: X right, Y forward, length at most 1.
	Move math.Vec2
	// Walk forces the walking speed tier.
	Walk bool

	Jump     ActionEvents
	Slide    ActionEvents
	Dash     ActionEvents
	WallGrab ActionEvents
}

// Input is the movement intent the Mover consumes.
type Input struct {
	// Movement is the world-space direction on the XZ plane (Y holds Z).
	Movement math.Vec2
	// SpeedModifier is 0, 0.5 or 1.
	SpeedModifier float32

	Jump     ActionEvents
	Slide    ActionEvents
	Dash     ActionEvents
	WallGrab ActionEvents
}

// MoveDir returns Movement as a horizontal 3D vector.
func (in *Input) MoveDir() math.Vec3 {
	return in.Movement.XZ(0)
}

// Gather turns raw input into world-space intent relative to the camera yaw.
// Facing follows the movement direction unless the state locks it.
func Gather(raw RawInput, cameraYaw math.Angle, state State, facing *math.Angle) Input {
	dir := math.Vec3{X: raw.Move.X, Z: -raw.Move.Y}.
		Normalize().
		RotateY(cameraYaw.Add(math.NewAngle(stdmath.Pi)).Get())

	in := Input{
		Movement:      dir.XZ(),
		SpeedModifier: speedTier(raw.Move.Length(), raw.Walk),
		Jump:          raw.Jump,
		Slide:         raw.Slide,
		Dash:          raw.Dash,
		WallGrab:      raw.WallGrab,
	}

	if in.Movement.LengthSquared() > 0 && !state.FacingLocked() {
		*facing = math.NewAngle(in.Movement.Swap().ToAngle())
	}
	return in
}

func speedTier(magnitude float32, walk bool) float32 {
	switch {
	case magnitude < walkThreshold:
		return speedStill
	case magnitude < runThreshold || walk:
		return speedWalk
	default:
		return speedRun
	}
}
