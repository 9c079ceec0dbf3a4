package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/system"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/logger"
	"github.com/milk9111/lionheart/prefabs"
	"github.com/milk9111/lionheart/sim"
)

type Game struct {
	levelName string
	debug     bool

	sim     *sim.Sim
	input   *PlayerInput
	view    *LevelView
	watcher *prefabs.Watcher

	paused    bool
	restart   bool
	clipboard bool
	pauseUI   *ebitenui.UI
}

func NewGame(levelName string, sfx entity.SfxPlayer, watcher *prefabs.Watcher, debug bool) (*Game, error) {
	g := &Game{
		levelName: levelName,
		debug:     debug,
		input:     NewPlayerInput(),
		watcher:   watcher,
	}
	g.sim = sim.New(sim.Config{
		Device:  g.input,
		Sfx:     sfx,
		Pollers: []system.Poller{g.input},
	})
	if err := g.load(); err != nil {
		return nil, err
	}
	g.clipboard = clipboard.Init() == nil
	return g, nil
}

func (g *Game) load() error {
	if err := g.sim.LoadLevel(g.levelName); err != nil {
		return err
	}
	g.input.Reset()
	g.view = NewLevelView(g.sim.Services().Tiles)
	cam := g.sim.Services().Camera
	g.pauseUI = NewPauseUI(g, int(cam.Width), int(cam.Height))
	return nil
}

func (g *Game) Update() error {
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyReplay()
	}

	if g.restart {
		g.restart = false
		g.paused = false
		return g.load()
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.sim.Step()
	g.logEvents()
	if _, ok := g.sim.Player(); !ok {
		logger.Log.WithField("frame", g.sim.Frame()).Info("player died, reloading level")
		return g.load()
	}
	return nil
}

// drainWatcher forgets every template edited on disk since the last frame.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Log.WithField("template", name).Info("template changed")
			g.sim.Invalidate(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				logger.Log.WithError(err).Warn("template watcher")
			}
		default:
			return
		}
	}
}

func (g *Game) logEvents() {
	for _, ev := range g.sim.Events() {
		logger.Entity(ev.Name, uint64(ev.Entity)).Debug(string(ev.Type))
	}
}

func (g *Game) copyReplay() {
	if !g.clipboard {
		logger.Log.Warn("clipboard unavailable")
		return
	}
	var buf bytes.Buffer
	if err := g.input.Replay.Write(&buf); err != nil {
		logger.Log.WithError(err).Warn("replay not copied")
		return
	}
	clipboard.Write(clipboard.FmtText, buf.Bytes())
	logger.Log.WithField("frames", g.input.Replay.Frames()).Info("replay copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	services := g.sim.Services()
	cam := services.Camera
	g.view.Draw(screen, cam, services.Water)

	for _, e := range ecs.Entities(g.sim.World()) {
		m, ok := entity.ModelOf(g.sim.World(), e)
		if !ok || !m.Alive() || m.Transform == nil || !cam.IsViewable(m.Transform) {
			continue
		}
		g.drawModel(screen, m, cam)
	}

	if g.debug {
		g.drawDebug(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawModel(screen *ebiten.Image, m *entity.Model, cam *entity.Camera) {
	t := m.Transform
	if m.Collidable == nil || !g.debug {
		r := screenRect(bodyBB(t.X, t.Y, t.Width, t.Height), cam)
		clr := colornames.Orange
		if p, ok := g.sim.Player(); ok && p == m {
			clr = colornames.Deepskyblue
		}
		vector.FillRect(screen, r.X, r.Y, r.Width, r.Height, clr, false)
		return
	}
	for _, h := range m.Collidable.Hitboxes {
		if h.Off {
			continue
		}
		r := screenRect(h.Bounds(t.X, t.Y, m.Mirrored()), cam)
		vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 1, hitboxColor(h.Name), false)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	msg := fmt.Sprintf("Frame: %d    FPS: %.2f", g.sim.Frame(), ebiten.ActualFPS())
	if p, ok := g.sim.Player(); ok {
		msg += fmt.Sprintf("\nx: %.1f  y: %.1f", p.Transform.X, p.Transform.Y)
		if p.States != nil {
			msg += fmt.Sprintf("  state: %v", p.States.Current())
		}
		if s := p.Stats; s != nil {
			msg += fmt.Sprintf("\nhealth: %d/%d  talisment: %d  life: %d", s.Health, s.HealthMax, s.Talisment, s.Life)
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cam := g.sim.Services().Camera
	return int(cam.Width), int(cam.Height)
}

func hitboxColor(name string) color.Color {
	h := collision.Hitbox{Name: name}
	switch {
	case h.Is(collision.Attack):
		return colornames.Red
	case h.Is(collision.Body):
		return colornames.Lime
	default:
		return colornames.Yellow
	}
}
