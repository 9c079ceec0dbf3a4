package feature

import (
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/entity"
)

// GlueListener is told when an entity starts and stops standing on the glue.
type GlueListener struct {
	Start func(other *entity.Model)
	End   func(other *entity.Model)
}

// Glue carries entities whose leg touches its glue hitbox.
type Glue struct {
	m         *entity.Model
	listeners []GlueListener
	offsetY   func() float64
	enabled   bool

	touched *entity.Model
	carried *entity.Model
}

func (g *Glue) Prepare(m *entity.Model) error {
	g.m = m
	return m.Require(string(entity.FeatureGlue), entity.CapTransform)
}

func (g *Glue) Recycle() {
	g.enabled = true
	g.touched = nil
	g.carried = nil
}

func (g *Glue) AddListener(l GlueListener) {
	g.listeners = append(g.listeners, l)
}

// SetOffsetY sinks carried entities by fn() below the glue top.
func (g *Glue) SetOffsetY(fn func() float64) {
	g.offsetY = fn
}

func (g *Glue) SetEnabled(on bool) {
	g.enabled = on
}

func (g *Glue) Enabled() bool {
	return g.enabled
}

// Carried returns the entity standing on the glue, if any.
func (g *Glue) Carried() *entity.Model {
	return g.carried
}

func (g *Glue) NotifyCollided(other *entity.Model, with, by collision.Hitbox) {
	if other == nil || other.Transform == nil || !with.Is(collision.Glue) || !by.Is(collision.Leg) {
		return
	}
	g.touched = other
	if !g.enabled {
		return
	}
	t, ot := g.m.Transform, other.Transform
	top := t.Y + with.OffsetY + with.Height
	if g.offsetY != nil {
		top -= g.offsetY()
	}
	ot.Y = top
	ot.X += t.X - t.OldX
	other.ResetGravity()
}

func (g *Glue) Update(float64) {
	switch {
	case g.touched != nil && g.carried == nil:
		g.carried = g.touched
		for _, l := range g.listeners {
			if l.Start != nil {
				l.Start(g.carried)
			}
		}
	case g.touched == nil && g.carried != nil:
		left := g.carried
		g.carried = nil
		for _, l := range g.listeners {
			if l.End != nil {
				l.End(left)
			}
		}
	}
	g.touched = nil
}
