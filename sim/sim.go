// Package sim runs a level frame by frame without any window. The game
// shell and the replay runner both drive it.
package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/ecs/system"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/levels"
	"github.com/milk9111/lionheart/logger"
	"github.com/milk9111/lionheart/spawn"
)

// Extrp is the step of one frame. The simulation always runs at a fixed
// step.
const Extrp = 1.0

// Config holds the collaborators handed to every level.
type Config struct {
	// Device drives the player. A nil device never moves.
	Device  component.Device
	Sfx     entity.SfxPlayer
	Pollers []system.Poller

	// Loader overrides the prefab descriptors, mostly for tests.
	Loader spawn.Loader
}

type Sim struct {
	cfg      Config
	world    *ecs.World
	services *entity.Services
	factory  *spawn.Factory
	level    *levels.Level
}

func New(cfg Config) *Sim {
	return &Sim{cfg: cfg}
}

// LoadLevel replaces the current world with a fresh one for the level called
// name, spawns the player and the placements.
func (s *Sim) LoadLevel(name string) error {
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}
	tiles, err := lvl.TileMap()
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	services := &entity.Services{
		Sfx:   s.cfg.Sfx,
		Tiles: tiles,
		Camera: &entity.Camera{
			Width:     lvl.Camera.Width,
			Height:    lvl.Camera.Height,
			IntervalH: lvl.Camera.IntervalH,
			IntervalV: lvl.Camera.IntervalV,
		},
	}
	services.Viewer = services.Camera
	if ws := lvl.Water; ws != nil {
		services.Water = &entity.Water{Height: ws.Height, Speed: ws.Speed, RaiseMax: ws.RaiseMax}
	}

	factory := spawn.New(w, services)
	if s.cfg.Loader != nil {
		factory.SetLoader(s.cfg.Loader)
	}
	factory.SetPlayerDevice(s.cfg.Device)

	for _, sys := range pipeline(services, s.cfg.Pollers) {
		w.AddSystem(sys)
	}

	player, err := factory.Spawn(lvl.Player, cp.Vector{X: lvl.Spawn.X, Y: lvl.Spawn.Y})
	if err != nil {
		return fmt.Errorf("sim: level %s: %w", lvl.Name, err)
	}
	services.SetPlayer(player)
	services.Camera.CenterOn(lvl.Spawn.X, lvl.Spawn.Y)
	services.Camera.Track(player)

	for _, p := range lvl.Placements {
		if _, err := factory.Spawn(p.Name, cp.Vector{X: p.X, Y: p.Y}); err != nil {
			return fmt.Errorf("sim: level %s: %w", lvl.Name, err)
		}
	}

	s.world, s.services, s.factory, s.level = w, services, factory, lvl
	logger.Log.WithFields(logrus.Fields{
		"level":    lvl.Name,
		"entities": len(ecs.Entities(w)),
	}).Info("level loaded")
	return nil
}

// pipeline lists the systems of one frame in execution order.
func pipeline(services *entity.Services, pollers []system.Poller) []ecs.System {
	return []ecs.System{
		system.NewInputSystem(services, pollers...),
		system.NewStateSystem(Extrp),
		system.NewMovementSystem(Extrp),
		system.NewTileCollisionSystem(services),
		system.NewCollisionSystem(),
		system.NewTransitionSystem(),
		system.NewFeatureSystem(Extrp),
		system.NewAnimationSystem(Extrp),
		system.NewCameraSystem(services, Extrp),
		system.NewBoundsSystem(services, system.DefaultBoundsMargin),
	}
}

// Step runs one frame. Entities destroyed during the frame are reaped at
// its end.
func (s *Sim) Step() {
	if s.world == nil {
		return
	}
	s.world.Update()
}

// Player returns the player while it is alive.
func (s *Sim) Player() (*entity.Model, bool) {
	return s.services.Player()
}

// Frame returns the number of frames run since the level loaded.
func (s *Sim) Frame() uint64 {
	return s.world.Frame()
}

// Events drains the spawn and reap events since the last call.
func (s *Sim) Events() []ecs.Event {
	if s.world == nil {
		return nil
	}
	return s.world.Events().Drain()
}

// Invalidate forgets a cached template so the next spawn reloads it.
func (s *Sim) Invalidate(name string) {
	if s.factory != nil {
		s.factory.Invalidate(name)
	}
}

func (s *Sim) World() *ecs.World          { return s.world }
func (s *Sim) Services() *entity.Services { return s.services }
func (s *Sim) Level() *levels.Level       { return s.level }

// Spawn places a template in the running level.
func (s *Sim) Spawn(name string, x, y float64) (*entity.Model, error) {
	if s.factory == nil {
		return nil, entity.ErrNoSpawner
	}
	return s.factory.Spawn(name, cp.Vector{X: x, Y: y})
}
