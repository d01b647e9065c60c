package sim

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/controller"
	"github.com/Faultbox/hopper/internal/logger"
)

func (w *World) applySettings(e *ecs.ECS) {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	if pending == nil {
		return
	}
	w.settings = *pending
	Player.Each(e.World, func(entry *donburi.Entry) {
		Settings.SetValue(entry, *pending)
	})
	w.log.Info("settings applied", zap.Uint64("tick", w.tick))
}

// updateCamera pulls this tick's input sample, feeds the raw part to every
// character and drives the camera with the rest.
func (w *World) updateCamera(e *ecs.ECS) {
	if w.source == nil {
		w.camera.Update(w.dt)
		return
	}

	sample := w.source.Next()
	w.camera.HandleStick(sample.Camera, w.dt)

	centered := false
	Player.Each(e.World, func(entry *donburi.Entry) {
		mustBePlayer(entry)
		RawInput.SetValue(entry, sample.Raw)
		if sample.Center && !centered {
			w.camera.Center(Kinematic.Get(entry).Facing)
			centered = true
		}
	})
	w.camera.Update(w.dt)
}

func (w *World) gatherInput(e *ecs.ECS) {
	yaw := w.camera.Yaw
	Player.Each(e.World, func(entry *donburi.Entry) {
		mustBePlayer(entry)
		body := Kinematic.Get(entry)
		in := controller.Gather(*RawInput.Get(entry), yaw, State.Get(entry).Current, &body.Facing)
		Input.SetValue(entry, in)
	})
}

func (w *World) stepMovers(e *ecs.ECS) {
	Player.Each(e.World, func(entry *donburi.Entry) {
		mustBePlayer(entry)
		col := Collider.Get(entry)
		state := State.Get(entry)

		data := controller.MovementData{
			ID:       col.ID,
			Body:     Kinematic.Get(entry),
			Input:    Input.Get(entry),
			Settings: Settings.Get(entry),
			Shape:    col.Shape,
		}
		prev := state.Current
		state.Current = controller.NewMover(w.level, data, &w.signals, w.dt).Step(prev)

		if prev.Name() != state.Current.Name() {
			w.log.Debug("state",
				zap.Uint64("tick", w.tick),
				zap.Uint64("body", uint64(col.ID)),
				zap.String("from", prev.Name()),
				zap.String("to", state.Current.Name()))
		}
		for _, s := range w.signals.Drain() {
			w.log.Debug("signal",
				zap.Uint64("tick", w.tick),
				zap.Uint64("body", uint64(col.ID)),
				zap.Stringer("kind", s.Kind),
				logger.Vec3("point", s.Point))
			w.emitted = append(w.emitted, s)
		}
	})
}

func (w *World) resizeColliders(e *ecs.ECS) {
	Player.Each(e.World, func(entry *donburi.Entry) {
		col := Collider.Get(entry)
		body := Kinematic.Get(entry)

		sliding := controller.IsSliding(State.Get(entry).Current)
		shape, pos, changed := controller.ResizeCollider(col.Sliding, sliding, body.Position)
		if !changed {
			return
		}
		col.Shape = shape
		col.Sliding = sliding
		body.Position = pos
	})
}

func (w *World) syncBodies(e *ecs.ECS) {
	Player.Each(e.World, func(entry *donburi.Entry) {
		col := Collider.Get(entry)
		w.level.SetBounds(col.ID, col.Shape.At(Kinematic.Get(entry).Position))
	})
}
