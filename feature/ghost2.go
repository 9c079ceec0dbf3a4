package feature

import (
	"math"

	"github.com/milk9111/lionheart/common"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/force"
	"github.com/milk9111/lionheart/tick"
)

const (
	ghostTrackTick = 100
	ghostSpeed     = 1.2
	ghostIdleStep  = 0.15
	ghostIdleAmp   = 2.0
)

// Ghost2 alternates between bobbing in place and dashing at the player's
// location, every ghostTrackTick ticks.
type Ghost2 struct {
	m *entity.Model

	tick    tick.Tick
	current force.Force
	dashing bool
	startY  float64
	idle    float64
	first   bool
}

func (g *Ghost2) Prepare(m *entity.Model) error {
	g.m = m
	g.current = force.Force{Velocity: 1, Sensibility: 0.5}
	return m.Require(string(entity.FeatureGhost2), entity.CapTransform)
}

func (g *Ghost2) Recycle() {
	g.first = true
	g.dashing = false
	g.idle = 0
	g.startY = 0
	g.current.Zero()
	g.tick.Restart()
}

// aim points the dash at the player. The lead ray is the distance from the
// player to itself, so the dash goes straight at the current location.
func (g *Ghost2) aim() {
	p := g.m.Services.PlayerView()
	if !p.Found {
		g.current.Zero()
		return
	}
	t := g.m.Transform
	dx, dy := p.X, p.Y
	ray := common.Distance(p.X, p.Y, p.X, p.Y)
	dx += math.Trunc((p.X - p.OldX) * ray)
	dy += math.Trunc((p.Y - p.OldY) * ray)

	dist := math.Max(math.Abs(t.X-dx), math.Abs(t.Y-dy))
	if dist == 0 {
		g.current.Zero()
		return
	}
	vx := (dx - t.X) / dist * ghostSpeed
	vy := (dy - t.Y) / dist * ghostSpeed
	g.current.SetDestination(vx, vy)
	g.current.SetDirection(vx, vy)
}

func (g *Ghost2) Update(extrp float64) {
	g.tick.Update(extrp)
	g.current.Update(extrp)
	t := g.m.Transform

	if g.first {
		g.first = false
		g.startY = t.Y
	}

	switch {
	case g.tick.Elapsed(ghostTrackTick):
		if !g.dashing {
			g.aim()
		}
		g.dashing = !g.dashing
		g.tick.Restart()
	case g.dashing:
		if h, ok := g.m.Hurtable(); ok && h.IsHurting() {
			g.current.Zero()
		}
		t.MoveLocation(extrp, g.current.Direction)
		g.startY = t.Y
	default:
		g.idle = common.Wrap(g.idle+ghostIdleStep, 0, 360)
		t.TeleportY(g.startY + math.Sin(g.idle)*ghostIdleAmp)
	}
}

// Dashing reports whether the ghost is moving toward its target.
func (g *Ghost2) Dashing() bool {
	return g.dashing
}
