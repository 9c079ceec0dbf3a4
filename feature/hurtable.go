package feature

import (
	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/state"
	"github.com/milk9111/lionheart/tick"
)

const (
	defaultLife    = 1
	defaultRecover = 30
)

// HurtableConfig is the hurtable block of a template. Missing fields keep
// their defaults.
type HurtableConfig struct {
	// Life is used when the model has no stats.
	Life int `yaml:"life"`
	// Recover is the number of ticks a hit protects from the next one.
	Recover int `yaml:"recover"`
	// Frame is shown instead of the hurt state when the model has none.
	Frame    *int      `yaml:"frame"`
	Effect   string    `yaml:"effect"`
	Backward *float64  `yaml:"backward"`
	Persist  bool      `yaml:"persist"`
	Fall     bool      `yaml:"fall"`
	Sfx      audio.Sfx `yaml:"sfx"`
	Boss     bool      `yaml:"boss"`
}

func (c HurtableConfig) withDefaults() HurtableConfig {
	if c.Life <= 0 {
		c.Life = defaultLife
	}
	if c.Recover <= 0 {
		c.Recover = defaultRecover
	}
	return c
}

// Hurtable takes hits from attack hitboxes and spike tiles, and kills the
// model once its life is gone.
type Hurtable struct {
	cfg HurtableConfig
	m   *entity.Model

	recover     tick.Tick
	life        int
	hurting     bool
	hurtingBody bool
	dead        bool
	destroyed   bool
}

func NewHurtable(cfg HurtableConfig) *Hurtable {
	return &Hurtable{cfg: cfg.withDefaults()}
}

func (h *Hurtable) Prepare(m *entity.Model) error {
	h.m = m
	return m.Require(string(entity.FeatureHurtable), entity.CapTransform)
}

func (h *Hurtable) Recycle() {
	h.recover.Stop()
	h.life = h.cfg.Life
	h.hurting = false
	h.hurtingBody = false
	h.dead = false
	h.destroyed = false
}

// Life is the health counter when the model has stats, the private counter
// otherwise.
func (h *Hurtable) Life() int {
	if h.m != nil && h.m.Stats != nil {
		return h.m.Stats.Health
	}
	return h.life
}

func (h *Hurtable) IsHurting() bool     { return h.hurting }
func (h *Hurtable) IsHurtingBody() bool { return h.hurtingBody }
func (h *Hurtable) IsDead() bool        { return h.dead }
func (h *Hurtable) Falls() bool         { return h.cfg.Fall }

// Hurt applies one hit from an attack.
func (h *Hurtable) Hurt() {
	h.damage(false)
}

// HurtDamages applies one hit from the environment.
func (h *Hurtable) HurtDamages() {
	h.damage(true)
}

func (h *Hurtable) damage(body bool) {
	if h.dead || h.hurting {
		return
	}
	h.hurting = true
	h.hurtingBody = body
	h.recover.Restart()
	h.m.Services.PlaySfx(h.cfg.Sfx)

	if h.decrement() <= 0 {
		h.Kill(false)
		return
	}
	if h.cfg.Backward != nil {
		h.knockback(*h.cfg.Backward)
	}
	if !h.m.ChangeState(state.Hurt) && h.cfg.Frame != nil && h.m.Anim != nil {
		h.m.Anim.SetFrame(*h.cfg.Frame)
	}
}

func (h *Hurtable) decrement() int {
	if s := h.m.Stats; s != nil {
		s.Health = max(0, s.Health-1)
		return s.Health
	}
	h.life--
	return h.life
}

func (h *Hurtable) knockback(speed float64) {
	mv := h.m.Movement
	if mv == nil {
		return
	}
	side := -1.0
	if h.m.Mirrored() {
		side = 1
	}
	mv.Move.SetDirection(side*speed, 0)
	mv.Move.SetDestination(0, 0)
}

// Kill enters the dead state. A forced kill destroys the model now, even
// when it persists.
func (h *Hurtable) Kill(force bool) {
	if h.dead && !force {
		return
	}
	first := !h.dead
	h.dead = true
	h.hurting = false
	if first {
		t := h.m.Transform
		spawn(h.m, h.cfg.Effect, t.X, t.Y)
		if h.cfg.Boss {
			h.m.Services.PlaySfx(audio.BossNorkaDefeated)
		}
		h.m.ChangeState(state.Dead)
	}
	if force || !h.cfg.Persist {
		h.destroy()
	}
}

func (h *Hurtable) destroy() {
	if !h.destroyed {
		h.destroyed = true
		h.m.Destroy()
	}
}

// Update recovers from hits and destroys a persisting corpse once its death
// is over.
func (h *Hurtable) Update(extrp float64) {
	h.recover.Update(extrp)
	if h.hurting && h.recover.Elapsed(h.cfg.Recover) {
		h.hurting = false
		h.hurtingBody = false
		h.recover.Stop()
	}
	if !h.dead || h.destroyed {
		return
	}
	if h.cfg.Fall {
		if t := h.m.Transform; t.Y < -t.Height {
			h.destroy()
		}
		return
	}
	if !h.m.Anim.Has(string(state.Dead)) || h.m.AnimFinished() {
		h.destroy()
	}
}

// NotifyCollided takes a hit when an attack hitbox of another group touches
// a body hitbox.
func (h *Hurtable) NotifyCollided(other *entity.Model, with, by collision.Hitbox) {
	if h.dead || other == nil || !with.Is(collision.Body) || !by.Is(collision.Attack) {
		return
	}
	if c, oc := h.m.Collidable, other.Collidable; c != nil && oc != nil && c.Group == oc.Group {
		return
	}
	h.Hurt()
}

// NotifyTileCollided hurts on spike tiles.
func (h *Hurtable) NotifyTileCollided(r collision.Result, _ collision.Category) {
	if r.Contains(collision.Spike) {
		h.HurtDamages()
	}
}
