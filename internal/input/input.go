// Package input turns button levels into the per-tick action events the
// controller consumes, and replays scripted input.
package input

import (
	"github.com/Faultbox/hopper/internal/controller"
	"github.com/Faultbox/hopper/pkg/math"
)

// Action tracks one button across ticks.
type Action struct {
	held bool
}

// Update records whether the button is down this tick and returns its events.
func (a *Action) Update(held bool) controller.ActionEvents {
	var e controller.ActionEvents
	switch {
	case held && !a.held:
		e = controller.ActionStarted | controller.ActionFired
	case held:
		e = controller.ActionFired
	case a.held:
		e = controller.ActionCompleted
	}
	a.held = held
	return e
}

// Held reports the level recorded by the last Update.
func (a *Action) Held() bool {
	return a.held
}

// Buttons is the level of every button for one tick.
type Buttons struct {
	Jump     bool
	Slide    bool
	Dash     bool
	WallGrab bool
	Walk     bool
}

// Tracker converts button levels into controller.RawInput.
type Tracker struct {
	jump, slide, dash, wallGrab Action
}

// Update advances all actions by one tick.
func (t *Tracker) Update(move math.Vec2, b Buttons) controller.RawInput {
	if l := move.Length(); l > 1 {
		move = move.Scale(1 / l)
	}
	return controller.RawInput{
		Move:     move,
		Walk:     b.Walk,
		Jump:     t.jump.Update(b.Jump),
		Slide:    t.slide.Update(b.Slide),
		Dash:     t.dash.Update(b.Dash),
		WallGrab: t.wallGrab.Update(b.WallGrab),
	}
}

// Reset releases every action without reporting completion.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
