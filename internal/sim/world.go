// Package sim runs player characters on a fixed timestep. Each tick applies
// queued settings, gathers input, steps every character's Mover, resizes
// colliders and syncs bodies back into the level.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/camera"
	"github.com/Faultbox/hopper/internal/collision"
	"github.com/Faultbox/hopper/internal/controller"
	"github.com/Faultbox/hopper/internal/input"
	"github.com/Faultbox/hopper/internal/logger"
	"github.com/Faultbox/hopper/pkg/math"
)

// DefaultTickRate is the fixed simulation rate in ticks per second.
const DefaultTickRate = 64

// InputSource supplies one sample of player input per tick.
type InputSource interface {
	Next() input.Sample
}

// Snapshot is the read-only view of one character after a tick.
type Snapshot struct {
	Entity   donburi.Entity
	Body     collision.BodyID
	Position math.Vec3
	Velocity math.Vec3
	Facing   math.Angle
	Rotation math.Quat
	State    string
	Sliding  bool
}

// World owns the entities, the level they move through and the camera that
// orients their input.
type World struct {
	ecs      *ecs.ECS
	level    *collision.Level
	camera   *camera.Orbit
	source   InputSource
	settings controller.Settings
	dt       float32
	tick     uint64
	log      *zap.Logger

	signals controller.SignalBuffer
	emitted []controller.Signal

	mu      sync.Mutex
	pending *controller.Settings
}

// NewWorld creates a world over level. settings is the template every new
// character starts with.
func NewWorld(level *collision.Level, settings controller.Settings, tickRate int) *World {
	if level == nil {
		panic("sim: nil level")
	}
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	w := &World{
		ecs:      ecs.NewECS(donburi.NewWorld()),
		level:    level,
		camera:   camera.NewOrbit(),
		settings: settings,
		dt:       1 / float32(tickRate),
		log:      logger.Named("sim"),
	}

	w.ecs.AddSystem(w.applySettings)
	w.ecs.AddSystem(w.updateCamera)
	w.ecs.AddSystem(w.gatherInput)
	w.ecs.AddSystem(w.stepMovers)
	w.ecs.AddSystem(w.resizeColliders)
	w.ecs.AddSystem(w.syncBodies)

	return w
}

// SetInputSource sets where per-tick input comes from. With no source each
// character keeps the raw input last given to SetRawInput.
func (w *World) SetInputSource(src InputSource) {
	w.source = src
}

// Camera returns the orbit camera.
func (w *World) Camera() *camera.Orbit {
	return w.camera
}

// Level returns the level the world moves through.
func (w *World) Level() *collision.Level {
	return w.level
}

// Tick is the number of completed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// Dt is the fixed tick length in seconds.
func (w *World) Dt() float32 {
	return w.dt
}

// Spawn creates a character standing at pos and registers its body in the
// level.
func (w *World) Spawn(pos math.Vec3) donburi.Entity {
	shape := controller.StandingShape()
	id := w.level.Add("player", collision.LayerPlayer, shape.At(pos))

	e := w.ecs.World.Create(playerArchetype()...)
	entry := w.ecs.World.Entry(e)

	Kinematic.SetValue(entry, controller.Body{Position: pos})
	State.SetValue(entry, StateData{Current: controller.InitialState()})
	Settings.SetValue(entry, w.settings)
	Collider.SetValue(entry, ColliderData{Shape: shape, ID: id})

	w.log.Debug("spawn",
		zap.Uint64("body", uint64(id)),
		logger.Vec3("position", pos))
	return e
}

// Despawn removes a character and its level body.
func (w *World) Despawn(e donburi.Entity) bool {
	if !w.ecs.World.Valid(e) {
		return false
	}
	entry := w.ecs.World.Entry(e)
	if entry.HasComponent(Collider) {
		w.level.Remove(Collider.Get(entry).ID)
	}
	w.ecs.World.Remove(e)
	return true
}

// SetRawInput replaces a character's raw input for the next tick.
func (w *World) SetRawInput(e donburi.Entity, raw controller.RawInput) {
	RawInput.SetValue(w.ecs.World.Entry(e), raw)
}

// QueueSettings replaces every character's settings at the start of the
// next tick. It is safe to call from any goroutine.
func (w *World) QueueSettings(s controller.Settings) {
	w.mu.Lock()
	w.pending = &s
	w.mu.Unlock()
}

// SwordBounce applies a sword bounce to the character.
func (w *World) SwordBounce(e donburi.Entity) bool {
	entry := w.ecs.World.Entry(e)
	body := Kinematic.Get(entry)
	ok := controller.SwordBounce(State.Get(entry).Current, &body.Velocity, Settings.Get(entry))
	if ok {
		w.log.Debug("sword bounce", zap.Float32("vy", body.Velocity.Y))
	}
	return ok
}

// Step runs one tick.
func (w *World) Step() {
	w.emitted = nil
	w.ecs.Update()
	w.tick++
}

// Signals returns the feedback signals emitted during the last tick. Each
// tick gets a fresh slice, so earlier results stay intact.
func (w *World) Signals() []controller.Signal {
	return w.emitted
}

// Snapshot returns the state of one character.
func (w *World) Snapshot(e donburi.Entity) Snapshot {
	entry := w.ecs.World.Entry(e)
	mustBePlayer(entry)
	return snapshot(entry)
}

// Snapshots returns every character.
func (w *World) Snapshots() []Snapshot {
	var out []Snapshot
	Player.Each(w.ecs.World, func(entry *donburi.Entry) {
		mustBePlayer(entry)
		out = append(out, snapshot(entry))
	})
	return out
}

func snapshot(entry *donburi.Entry) Snapshot {
	body := Kinematic.Get(entry)
	col := Collider.Get(entry)
	return Snapshot{
		Entity:   entry.Entity(),
		Body:     col.ID,
		Position: body.Position,
		Velocity: body.Velocity,
		Facing:   body.Facing,
		Rotation: controller.ModelRotation(body.Facing),
		State:    State.Get(entry).Current.Name(),
		Sliding:  col.Sliding,
	}
}

// Run steps the world ticks times, or until ctx is done when ticks is zero
// or less. With realtime set it paces ticks to wall-clock time.
func (w *World) Run(ctx context.Context, ticks int, realtime bool) error {
	var pace <-chan time.Time
	if realtime {
		t := time.NewTicker(time.Duration(float64(w.dt) * float64(time.Second)))
		defer t.Stop()
		pace = t.C
	}

	for i := 0; ticks <= 0 || i < ticks; i++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		w.Step()
	}
	return nil
}
