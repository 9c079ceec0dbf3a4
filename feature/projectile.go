package feature

import (
	"fmt"

	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/tick"
)

const (
	platformTurnX = 224
	ballDelayTick = 8
)

// NorkaPlatform is a launched platform that stops after a distance set by
// its vertical speed, then sinks once its delay ran out.
type NorkaPlatform struct {
	m      *entity.Model
	hurt   entity.Hurter
	tick   tick.Tick
	first  bool
	startX float64
	delay  int
}

func (n *NorkaPlatform) Prepare(m *entity.Model) error {
	n.m = m
	if err := m.Require(string(entity.FeatureNorkaPlatform), entity.CapTransform, entity.CapLaunchable); err != nil {
		return err
	}
	h, ok := m.Hurtable()
	if !ok {
		return fmt.Errorf("%w: norka_platform of %s needs hurtable", entity.ErrMissingCapability, m.Name)
	}
	n.hurt = h
	return nil
}

func (n *NorkaPlatform) Recycle() {
	n.first = true
	n.startX = 0
	n.delay = 0
	n.tick.Stop()
}

// reach returns the travel distance and the lifetime for the launch speed.
func (n *NorkaPlatform) reach() (maxX float64, delay int) {
	switch n.m.Launchable.Direction.Vertical() {
	case -3.0:
		return 48, 280
	case -0.5:
		return 112, 258
	}
	return 76, 250
}

func (n *NorkaPlatform) Update(extrp float64) {
	t := n.m.Transform
	d := &n.m.Launchable.Direction
	if n.first {
		n.startX = t.X
		if n.startX > platformTurnX {
			dx, dy := d.Horizontal(), d.Vertical()
			d.SetDirection(-dx, dy)
			d.SetDestination(-dx, dy)
		}
		n.first = false
	}
	if !n.tick.IsStarted() {
		maxX, delay := n.reach()
		n.delay = delay
		if abs(n.startX-t.X) > maxX {
			d.Zero()
			n.tick.Start()
		}
	}
	n.tick.Update(extrp)
	if n.tick.Elapsed(n.delay) {
		n.hurt.Kill(true)
	}
}

type HotFireBallConfig struct {
	Delay int     `yaml:"delay"`
	Count int     `yaml:"count"`
	Vx    float64 `yaml:"vx"`
	Vy    float64 `yaml:"vy"`
}

// HotFireBall fires series of Count+1 balls every ballDelayTick ticks, one
// series per Delay ticks.
type HotFireBall struct {
	cfg      HotFireBallConfig
	m        *entity.Model
	launcher *Launcher
	tick     tick.Tick
	series   tick.Tick
	current  int
}

func NewHotFireBall(cfg HotFireBallConfig) *HotFireBall {
	return &HotFireBall{cfg: cfg}
}

func (h *HotFireBall) Prepare(m *entity.Model) error {
	h.m = m
	l, ok := entity.GetFeature[*Launcher](m, entity.FeatureLauncher)
	if !ok {
		return fmt.Errorf("%w: hot_fire_ball of %s needs launcher", entity.ErrMissingCapability, m.Name)
	}
	h.launcher = l
	l.AddListener(func(p *entity.Model) {
		if p.Launchable != nil {
			p.Launchable.Direction.SetDestination(h.cfg.Vx, h.cfg.Vy)
		}
	})
	return nil
}

// Recycle starts the first series halfway through the delay.
func (h *HotFireBall) Recycle() {
	h.current = 0
	h.tick.Restart()
	h.tick.Set(float64(h.cfg.Delay / 2))
	h.series.Restart()
}

func (h *HotFireBall) Update(extrp float64) {
	h.tick.Update(extrp)
	if !h.tick.Elapsed(h.cfg.Delay) {
		return
	}
	h.series.Update(extrp)
	if !h.series.Elapsed(ballDelayTick) {
		return
	}
	if h.current == 0 && h.m.Services.IsViewable(h.m.Transform) {
		h.m.Services.PlaySfx(audio.SceneryFireBall)
	}
	h.current++
	if h.current > h.cfg.Count {
		h.current = 0
		h.tick.Restart()
	}
	h.launcher.Fire()
	h.series.Restart()
}

// BossNorka2Bullet can be sent back with a falling attack. A reverted
// bullet hurts the boss and dies.
type BossNorka2Bullet struct {
	m        *entity.Model
	hurt     entity.Hurter
	reverted bool
}

func (b *BossNorka2Bullet) Prepare(m *entity.Model) error {
	b.m = m
	if err := m.Require(string(entity.FeatureBossNorka2Bullet), entity.CapLaunchable); err != nil {
		return err
	}
	h, ok := m.Hurtable()
	if !ok {
		return fmt.Errorf("%w: boss_norka2_bullet of %s needs hurtable", entity.ErrMissingCapability, m.Name)
	}
	b.hurt = h
	return nil
}

func (b *BossNorka2Bullet) Recycle() {
	b.reverted = false
}

func (b *BossNorka2Bullet) Reverted() bool {
	return b.reverted
}

func (b *BossNorka2Bullet) NotifyCollided(other *entity.Model, with, by collision.Hitbox) {
	if other == nil {
		return
	}
	if b.reverted && with.Is(collision.Attack) && by.Is(collision.Body) && other.HasFeature(entity.FeatureBossNorka2) {
		if h, ok := other.Hurtable(); ok {
			h.Hurt()
		}
		b.hurt.Kill(true)
	}
	if !b.reverted && with.Is(collision.Body) && by.Is(collision.AttackFall) {
		d := &b.m.Launchable.Direction
		sh, sv := d.Horizontal(), d.Vertical()
		d.SetDirection(-sh, sv)
		d.SetDestination(-sh, sv)
		b.reverted = true
	}
}
