package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hopper/internal/collision"
	"github.com/Faultbox/hopper/pkg/math"
)

const (
	dt  = float32(1.0 / 64.0)
	eps = 1e-3
)

// restHeight is the centre height of a standing player resting on y=0.
const restHeight = PlayerHeight/2 + skinWidth

func v3(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}

// rig drives a single character through a real or fake level.
type rig struct {
	t        *testing.T
	queries  collision.Queries
	body     Body
	input    Input
	settings Settings
	shape    collision.Box
	state    State
	signals  SignalBuffer
}

func newRig(t *testing.T, q collision.Queries) *rig {
	t.Helper()
	return &rig{
		t:        t,
		queries:  q,
		settings: DefaultSettings(),
		shape:    StandingShape(),
		state:    InitialState(),
	}
}

func (r *rig) step() State {
	data := MovementData{
		ID:       0,
		Body:     &r.body,
		Input:    &r.input,
		Settings: &r.settings,
		Shape:    r.shape,
	}
	r.state = NewMover(r.queries, data, &r.signals, dt).Step(r.state)
	return r.state
}

// press sets Started and Fired for one tick; hold keeps Fired.
func press() ActionEvents { return ActionStarted | ActionFired }
func hold() ActionEvents  { return ActionFired }

func (r *rig) kinds() []SignalKind {
	var out []SignalKind
	for _, s := range r.signals.Drain() {
		out = append(out, s.Kind)
	}
	return out
}

// flatLevel has a 20x20 floor whose top is y=0.
func flatLevel(t *testing.T) *collision.Level {
	t.Helper()
	l := collision.NewLevel()
	l.AddStatic("floor", collision.NewAABB(v3(-10, -1, -10), v3(10, 0, 10)))
	return l
}

// onFloor places the rig at rest on y=0.
func (r *rig) onFloor(x, z float32) {
	r.body.Position = v3(x, restHeight, z)
	r.state = &GroundedState{}
}

func requireState[T State](t *testing.T, s State) T {
	t.Helper()
	v, ok := s.(T)
	require.Truef(t, ok, "state is %s", s.Name())
	return v
}
