package feature

import (
	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
)

type TakeableConfig struct {
	Sfx    audio.Sfx            `yaml:"sfx"`
	Effect string               `yaml:"effect"`
	Stats  component.StatsDelta `yaml:",inline"`
}

// Takeable is a pickup. The first body with stats that touches its take
// hitbox receives the stats, then the pickup is destroyed.
type Takeable struct {
	cfg   TakeableConfig
	m     *entity.Model
	taken bool
}

func NewTakeable(cfg TakeableConfig) *Takeable {
	return &Takeable{cfg: cfg}
}

func (t *Takeable) Prepare(m *entity.Model) error {
	t.m = m
	return m.Require(string(entity.FeatureTakeable), entity.CapTransform)
}

func (t *Takeable) Recycle() {
	t.taken = false
}

func (t *Takeable) Taken() bool {
	return t.taken
}

func (t *Takeable) NotifyCollided(other *entity.Model, with, by collision.Hitbox) {
	if t.taken || other == nil || other.Stats == nil {
		return
	}
	if !with.Is(collision.Take) || !by.Is(collision.Body) {
		return
	}
	t.taken = true
	t.m.Services.PlaySfx(t.cfg.Sfx)
	other.Stats.Apply(t.cfg.Stats)
	tr := t.m.Transform
	spawn(t.m, t.cfg.Effect, tr.X, tr.Y)
	t.m.Destroy()
}
