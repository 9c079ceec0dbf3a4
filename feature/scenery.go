package feature

import (
	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/tick"
)

const (
	animIdle  = "idle"
	animRise  = "rise"
	animClose = "close"
	animOut   = "out"
	animIn    = "in"
)

type PillarConfig struct {
	Delay int `yaml:"delay"`
}

// Pillar rises after its delay and sinks when closed.
type Pillar struct {
	cfg PillarConfig
	m   *entity.Model

	tick    tick.Tick
	risen   bool
	closing bool
}

func NewPillar(cfg PillarConfig) *Pillar {
	return &Pillar{cfg: cfg}
}

func (p *Pillar) Prepare(m *entity.Model) error {
	p.m = m
	return nil
}

// Load overrides the configured rise delay.
func (p *Pillar) Load(delay int) {
	p.cfg.Delay = delay
}

func (p *Pillar) Recycle() {
	p.tick.Restart()
	p.risen = false
	p.closing = false
	p.m.PlayAnim(animIdle)
}

func (p *Pillar) Close() {
	if p.closing {
		return
	}
	p.closing = true
	p.tick.Stop()
	p.m.PlayAnim(animClose)
}

func (p *Pillar) Update(extrp float64) {
	if p.closing {
		if !p.m.Anim.Has(animClose) || p.m.AnimFinished() {
			p.m.Destroy()
		}
		return
	}
	p.tick.Update(extrp)
	if !p.risen && p.tick.Elapsed(p.cfg.Delay) {
		p.risen = true
		p.m.PlayAnim(animRise)
	}
}

type SpikeConfig struct {
	// Delay toggles the spike every Delay ticks. Without it the spike stays out.
	Delay *int `yaml:"delay"`
}

// Spike is a trap whose attack hitboxes go in and out.
type Spike struct {
	cfg SpikeConfig
	m   *entity.Model

	tick tick.Tick
	out  bool
}

func NewSpike(cfg SpikeConfig) *Spike {
	return &Spike{cfg: cfg}
}

func (s *Spike) Prepare(m *entity.Model) error {
	s.m = m
	return m.Require(string(entity.FeatureSpike), entity.CapCollidable, entity.CapTransform)
}

func (s *Spike) Recycle() {
	s.tick.Restart()
	s.set(true)
}

func (s *Spike) set(out bool) {
	s.out = out
	s.m.Collidable.SetHitboxes(collision.Attack, out)
	if out {
		s.m.PlayAnim(animOut)
	} else {
		s.m.PlayAnim(animIn)
	}
}

func (s *Spike) Update(extrp float64) {
	if s.cfg.Delay == nil {
		return
	}
	s.tick.Update(extrp)
	if !s.tick.Elapsed(*s.cfg.Delay) {
		return
	}
	s.set(!s.out)
	if s.out && s.m.Services.IsViewable(s.m.Transform) {
		s.m.Services.PlaySfx(audio.ScenerySpike)
	}
	s.tick.Restart()
}

// Out reports whether the spike currently hurts.
func (s *Spike) Out() bool {
	return s.out
}
