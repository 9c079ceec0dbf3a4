package feature

import (
	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/entity"
)

type LauncherConfig struct {
	Projectile string    `yaml:"projectile"`
	Vx         float64   `yaml:"vx"`
	Vy         float64   `yaml:"vy"`
	OffsetX    float64   `yaml:"offset_x"`
	OffsetY    float64   `yaml:"offset_y"`
	Sfx        audio.Sfx `yaml:"sfx"`
}

// Launcher spawns projectiles and gives them their launch direction.
type Launcher struct {
	cfg       LauncherConfig
	m         *entity.Model
	listeners []func(p *entity.Model)
}

func NewLauncher(cfg LauncherConfig) *Launcher {
	return &Launcher{cfg: cfg}
}

func (l *Launcher) Prepare(m *entity.Model) error {
	l.m = m
	return m.Require(string(entity.FeatureLauncher), entity.CapTransform)
}

// AddListener registers fn for every launched projectile.
func (l *Launcher) AddListener(fn func(p *entity.Model)) {
	l.listeners = append(l.listeners, fn)
}

// Fire launches one projectile. A mirrored launcher fires backward.
func (l *Launcher) Fire() *entity.Model {
	t := l.m.Transform
	side := 1.0
	if l.m.Mirrored() {
		side = -1
	}
	p := spawn(l.m, l.cfg.Projectile, t.X+side*l.cfg.OffsetX, t.Y+l.cfg.OffsetY)
	if p == nil {
		return nil
	}
	if p.Launchable != nil {
		p.Launchable.Direction.SetDirection(side*l.cfg.Vx, l.cfg.Vy)
		p.Launchable.Direction.SetDestination(side*l.cfg.Vx, l.cfg.Vy)
	}
	l.m.Services.PlaySfx(l.cfg.Sfx)
	for _, fn := range l.listeners {
		fn(p)
	}
	return p
}
