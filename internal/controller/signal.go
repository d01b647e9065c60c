package controller

import "github.com/Faultbox/hopper/pkg/math"

// SignalKind identifies a feedback event raised by a transition.
type SignalKind uint8

const (
	SignalGroundJump SignalKind = iota + 1
	SignalCoyoteTimeJump
	SignalCoyoteFrictionJump
	SignalAirJump
	SignalSlam
)

func (k SignalKind) String() string {
	switch k {
	case SignalGroundJump:
		return "ground_jump"
	case SignalCoyoteTimeJump:
		return "coyote_time_jump"
	case SignalCoyoteFrictionJump:
		return "coyote_friction_jump"
	case SignalAirJump:
		return "air_jump"
	case SignalSlam:
		return "slam"
	default:
		return "unknown"
	}
}

// Signal is emitted for audio and effects. Point is set for slams only.
type Signal struct {
	Kind  SignalKind
	Point math.Vec3
}

// SignalSink receives signals during a step.
type SignalSink interface {
	Emit(Signal)
}

// SignalBuffer collects signals until drained.
type SignalBuffer struct {
	signals []Signal
}

func (b *SignalBuffer) Emit(s Signal) {
	b.signals = append(b.signals, s)
}

// Signals returns the buffered signals without clearing them.
func (b *SignalBuffer) Signals() []Signal {
	return b.signals
}

// Drain returns the buffered signals and clears the buffer.
func (b *SignalBuffer) Drain() []Signal {
	out := b.signals
	b.signals = nil
	return out
}
