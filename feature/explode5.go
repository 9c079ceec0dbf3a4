package feature

import (
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/tick"
)

const defaultExplodeEffect = "explode"

// explode5Offsets are x, y and fire tick of each explosion.
var explode5Offsets = [...][3]int{
	{0, 0, 0},
	{-16, 16, 9},
	{16, 16, 18},
	{16, -16, 27},
	{-16, -16, 36},
}

// explode5Lifetime is the last fire tick plus one interval.
var explode5Lifetime = explode5Offsets[len(explode5Offsets)-1][2] + explode5Offsets[1][2]

type Explode5Config struct {
	Effect string `yaml:"effect"`
}

type explodePhase int

const (
	explodeArm explodePhase = iota
	explodeWait
)

// Explode5 spawns five explosions around its location then destroys itself.
type Explode5 struct {
	cfg Explode5Config
	m   *entity.Model

	tick  tick.Tick
	phase explodePhase
}

func NewExplode5(cfg Explode5Config) *Explode5 {
	if cfg.Effect == "" {
		cfg.Effect = defaultExplodeEffect
	}
	return &Explode5{cfg: cfg}
}

func (e *Explode5) Prepare(m *entity.Model) error {
	e.m = m
	return m.Require(string(entity.FeatureExplode5), entity.CapTransform)
}

func (e *Explode5) Recycle() {
	e.phase = explodeArm
	e.tick.ClearActions()
	e.tick.Restart()
}

func (e *Explode5) Update(extrp float64) {
	e.tick.Update(extrp)
	switch e.phase {
	case explodeArm:
		t := e.m.Transform
		for _, o := range explode5Offsets {
			x, y := t.X+float64(o[0]), t.Y+float64(o[1])
			e.tick.AddAction(func() { spawn(e.m, e.cfg.Effect, x, y) }, o[2])
		}
		e.phase = explodeWait
		e.tick.Restart()
	case explodeWait:
		if e.tick.Elapsed(explode5Lifetime) {
			e.m.Destroy()
		}
	}
}
