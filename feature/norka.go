package feature

import (
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/tick"
)

const (
	norkaPillarDelay = 80
	norkaFlyerDelay  = 90
	norkaPillars     = 4
	norkaWaterMargin = 4
)

// Templates spawned by the Norka sequence.
const (
	NorkaPillar = "pillar"
	NorkaFlyer  = "boss1"
	NorkaDaemon = "boss2a"
	NorkaDemon  = "boss2b"
	NorkaWalk   = "norka_walk"
)

type norkaPhase int

const (
	norkaSpawnPillar norkaPhase = iota
	norkaSpawnFlyer
	norkaFight
)

func (p norkaPhase) String() string {
	switch p {
	case norkaSpawnPillar:
		return "spawn_pillar"
	case norkaSpawnFlyer:
		return "spawn_flyer"
	}
	return "fight"
}

// Norka runs the boss sequence: pillars rise, the flyer comes in, its death
// closes the pillars and drains the water, then the two part daemon has to
// die before Norka leaves and the walking stage spawns.
type Norka struct {
	m *entity.Model

	tick    tick.Tick
	phase   norkaPhase
	pillars [norkaPillars]handle
	flyer   handle
	daemon  handle
	exit    bool
}

func (n *Norka) Prepare(m *entity.Model) error {
	n.m = m
	if err := m.Require(string(entity.FeatureNorka), entity.CapAnim); err != nil {
		return err
	}
	m.Anim.AddListener(func(s component.AnimState) {
		if n.exit && s == component.AnimFinished {
			n.exit = false
			spawn(n.m, NorkaWalk, 208, 112)
			n.m.Destroy()
		}
	})
	return nil
}

func (n *Norka) Recycle() {
	n.exit = false
	n.phase = norkaSpawnPillar
	n.flyer = handle{}
	for i := range n.pillars {
		p := spawn(n.m, NorkaPillar, float64(88+i*80), 0)
		if pillar, ok := entity.GetFeature[*Pillar](p, entity.FeaturePillar); ok {
			pillar.Load(100 + i*100)
		}
		n.pillars[i] = hold(p)
	}
	n.spawnDaemon()
	n.m.PlayAnim(animIdle)
	n.tick.Restart()
}

// Phase names the current step of the sequence.
func (n *Norka) Phase() string {
	return n.phase.String()
}

func (n *Norka) spawnDaemon() {
	d := spawn(n.m, NorkaDaemon, 208, 176)
	n.daemon = hold(d)
	if d == nil {
		return
	}
	d.AddDestroyListener(func(*entity.Model) {
		if b := spawn(n.m, NorkaDemon, 208, 177); b != nil {
			b.AddDestroyListener(func(*entity.Model) { n.onDaemonDeath() })
		}
	})
}

func (n *Norka) onFlyerDeath() {
	n.daemon.destroy()
	for _, p := range n.pillars {
		if !p.alive() {
			continue
		}
		if c, ok := entity.GetFeature[entity.Closer](p.m, entity.FeaturePillar); ok {
			c.Close()
		}
	}
	if w := n.m.Services.Water; w != nil {
		w.RaiseMax = -1
	}
}

func (n *Norka) onDaemonDeath() {
	idle, ok := n.m.Anim.Get(animIdle)
	if !ok {
		return
	}
	n.m.PlayAnim(animIdle)
	n.m.Anim.SetFrame(idle.Last)
	n.m.Anim.SetSpeed(-idle.Speed)
	n.exit = true
}

func (n *Norka) Update(extrp float64) {
	switch n.phase {
	case norkaSpawnPillar:
		n.tick.Update(extrp)
		if n.tick.Elapsed(norkaPillarDelay) {
			n.phase = norkaSpawnFlyer
			n.tick.Restart()
		}
	case norkaSpawnFlyer:
		n.tick.Update(extrp)
		if n.tick.Elapsed(norkaFlyerDelay) {
			f := spawn(n.m, NorkaFlyer, 208, 400)
			n.flyer = hold(f)
			if f != nil {
				f.AddDestroyListener(func(*entity.Model) { n.onFlyerDeath() })
			}
			n.phase = norkaFight
		}
	}
	n.drown()
}

// drown hurts the player while it is under water.
func (n *Norka) drown() {
	p, ok := n.m.Services.Player()
	w := n.m.Services.Water
	if !ok || w == nil || p.Transform == nil {
		return
	}
	h, ok := p.Hurtable()
	if ok && p.Transform.Y < w.Height-norkaWaterMargin && !h.IsHurtingBody() {
		h.HurtDamages()
	}
}
