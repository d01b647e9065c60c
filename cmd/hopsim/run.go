package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/collision"
	"github.com/Faultbox/hopper/internal/config"
	"github.com/Faultbox/hopper/internal/controller"
	"github.com/Faultbox/hopper/internal/input"
	"github.com/Faultbox/hopper/internal/logger"
	"github.com/Faultbox/hopper/internal/sim"
	"github.com/Faultbox/hopper/internal/watch"
	"github.com/Faultbox/hopper/pkg/math"
)

// defaultLevel is used when no level file is configured.
var defaultLevel = collision.LevelFile{
	Boxes: []collision.BoxSpec{
		{Name: "floor", Min: [3]float32{-50, -1, -50}, Max: [3]float32{50, 0, 50}},
	},
	Spawns: []collision.SpawnSpec{
		{Position: [3]float32{0, 1, 0}},
	},
}

// run builds a world from cfg, runs it and writes the final state of every
// character to out.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	level, err := loadLevel(cfg.Level)
	if err != nil {
		return err
	}

	settings := cfg.Controller
	if cfg.Watch.Enabled {
		if settings, err = controller.LoadSettingsFile(cfg.Watch.SettingsFile); err != nil {
			return err
		}
	}

	if cfg.Unlocks != nil {
		settings.ApplyUnlocks(*cfg.Unlocks)
	}

	world := sim.NewWorld(level.Level, settings, cfg.Simulation.TickRate)
	spawns := level.Spawns
	if len(spawns) == 0 {
		spawns = []math.Vec3{{Y: 1}}
	}
	for _, p := range spawns {
		world.Spawn(p)
	}

	ticks := cfg.Simulation.Ticks
	if cfg.Script != "" {
		script, err := input.LoadScriptFile(cfg.Script)
		if err != nil {
			return err
		}
		world.SetInputSource(input.NewPlayback(script))
		if ticks == 0 {
			ticks = script.Length()
		}
		logger.Info("script loaded",
			zap.String("path", cfg.Script),
			zap.Int("frames", len(script.Frames)))
	}
	if ticks == 0 && !cfg.Simulation.Realtime {
		return errors.New("nothing bounds the run: set ticks, a script or realtime")
	}

	if cfg.Watch.Enabled {
		q := unlockedQueue{world: world, unlocks: cfg.Unlocks}
		w, err := watch.NewWatcher(cfg.Watch.SettingsFile, q, watch.DefaultDebounce)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			for err := range w.Errors {
				logger.Warn("settings watcher", zap.Error(err))
			}
		}()
	}

	logger.Info("simulation starting",
		zap.Int("players", len(spawns)),
		zap.Int("ticks", ticks),
		zap.Int("tick_rate", cfg.Simulation.TickRate))

	err = world.Run(ctx, ticks, cfg.Simulation.Realtime)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running simulation: %w", err)
	}

	report(out, world)
	return nil
}

// unlockedQueue keeps configured unlocks applied to reloaded settings.
type unlockedQueue struct {
	world   *sim.World
	unlocks *controller.Unlocks
}

func (q unlockedQueue) QueueSettings(s controller.Settings) {
	if q.unlocks != nil {
		s.ApplyUnlocks(*q.unlocks)
	}
	q.world.QueueSettings(s)
}

func loadLevel(path string) (*collision.LoadedLevel, error) {
	if path == "" {
		return defaultLevel.Build()
	}
	return collision.LoadLevelFile(path)
}

func report(out io.Writer, world *sim.World) {
	cam := world.Camera()
	off := cam.Offset()
	fmt.Fprintf(out, "ticks: %d\n", world.Tick())
	fmt.Fprintf(out, "camera: yaw=%.1f° visual=%.1f° distance=%.2f offset=(%.3f, %.3f, %.3f)\n",
		cam.Yaw.Degrees(), cam.VisualYaw().Degrees(), cam.Distance, off.X, off.Y, off.Z)
	for _, s := range world.Snapshots() {
		fmt.Fprintf(out, "player %d: %s pos=(%.3f, %.3f, %.3f) vel=(%.3f, %.3f, %.3f) facing=%.1f°\n",
			s.Body, s.State,
			s.Position.X, s.Position.Y, s.Position.Z,
			s.Velocity.X, s.Velocity.Y, s.Velocity.Z,
			s.Facing.Degrees())
	}
}
