package feature

import (
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/fsm"
	"github.com/milk9111/lionheart/state"
)

type PatrolConfig struct {
	Sh        float64 `yaml:"sh"`
	Sv        float64 `yaml:"sv"`
	Amplitude int     `yaml:"amplitude"`
	// Coll disables the collidable while turning.
	Coll bool `yaml:"coll"`
}

// Patrol moves its model back and forth. It is the model's input device and
// reverses both speeds once the moved distance exceeds the amplitude.
type Patrol struct {
	cfg PatrolConfig
	m   *entity.Model

	sh, sv float64
	moved  float64
}

func NewPatrol(cfg PatrolConfig) *Patrol {
	return &Patrol{cfg: cfg}
}

func (p *Patrol) Prepare(m *entity.Model) error {
	p.m = m
	if err := m.Require(string(entity.FeaturePatrol), entity.CapMovement, entity.CapMirror, entity.CapControl, entity.CapStates); err != nil {
		return err
	}
	m.Control.Device = p
	m.States.AddListener(func(_, to fsm.StateID) {
		if c := p.m.Collidable; c != nil {
			c.Enabled = !p.cfg.Coll || to != state.Turn
		}
	})
	return nil
}

func (p *Patrol) Recycle() {
	p.sh, p.sv = p.cfg.Sh, p.cfg.Sv
	p.moved = 0
	p.m.ChangeState(state.Patrol)
	p.ApplyMirror()
}

func (p *Patrol) Horizontal() float64 { return p.sh }
func (p *Patrol) Vertical() float64   { return p.sv }
func (p *Patrol) Fire() bool          { return false }
func (p *Patrol) FireOnce() bool      { return false }

// Speeds returns the current signed speeds.
func (p *Patrol) Speeds() (sh, sv float64) {
	return p.sh, p.sv
}

// ApplyMirror faces the model along its speeds.
func (p *Patrol) ApplyMirror() {
	mr := p.m.Mirror
	switch {
	case p.sh < 0 && mr.Is(component.MirrorNone):
		mr.Set(component.MirrorHorizontal)
	case p.sh > 0 && mr.Is(component.MirrorHorizontal):
		mr.Set(component.MirrorNone)
	}
	switch {
	case p.sv < 0 && mr.Is(component.MirrorNone):
		mr.Set(component.MirrorVertical)
	case p.sv > 0 && mr.Is(component.MirrorVertical):
		mr.Set(component.MirrorNone)
	}
}

// Update accumulates the distance moved this frame, then reverses when it
// went past the amplitude.
func (p *Patrol) Update(float64) {
	mv := p.m.Movement
	p.moved += mv.Move.Horizontal() + mv.Move.Vertical()
	if p.cfg.Amplitude <= 0 || abs(p.moved) <= float64(p.cfg.Amplitude) {
		return
	}
	p.moved = 0
	p.sh, p.sv = -p.sh, -p.sv
	if p.m.Anim.Has(string(state.Turn)) {
		p.m.ChangeState(state.Turn)
	} else {
		p.ApplyMirror()
	}
}
