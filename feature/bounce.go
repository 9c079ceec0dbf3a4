package feature

import (
	"strings"

	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/common"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/tick"
)

const (
	bounceMax       = 3.5
	bounceDelayTick = 4
	bounceBiasMax   = 3.0
	bounceSlope     = 0.5
	bounceIncline   = 0.75
	bounceLift      = 2.0
)

type BounceConfig struct {
	Sfx audio.Sfx `yaml:"sfx"`
	// Count caps the number of bounces. Zero bounces forever.
	Count int `yaml:"count"`
}

// BulletBounceOnGround makes a projectile bounce on ground tiles and turn
// back on walls.
type BulletBounceOnGround struct {
	cfg BounceConfig
	m   *entity.Model

	tick    tick.Tick
	bounceX float64
	bounced int
}

func NewBulletBounceOnGround(cfg BounceConfig) *BulletBounceOnGround {
	return &BulletBounceOnGround{cfg: cfg}
}

func (b *BulletBounceOnGround) Prepare(m *entity.Model) error {
	b.m = m
	err := m.Require(string(entity.FeatureBulletBounce),
		entity.CapTransform, entity.CapBody, entity.CapMovement, entity.CapLaunchable, entity.CapTileCollidable)
	if err != nil {
		return err
	}
	jump := &m.Movement.Jump
	jump.Velocity = 0.1
	jump.Sensibility = 0.5
	jump.Zero()
	return nil
}

func (b *BulletBounceOnGround) Recycle() {
	b.m.PlayAnim(animIdle)
	b.tick.Restart()
	b.tick.Set(bounceDelayTick)
	b.bounceX = 0
	b.bounced = 0
}

// Load gives the projectile its horizontal speed.
func (b *BulletBounceOnGround) Load(vx float64) {
	b.m.Movement.Move.SetDirection(vx, 0)
	b.m.Movement.Move.SetDestination(vx, 0)
}

func (b *BulletBounceOnGround) Update(extrp float64) {
	b.tick.Update(extrp)
}

// Bias returns the accumulated horizontal bounce and the bounce count.
func (b *BulletBounceOnGround) Bias() (float64, int) {
	return b.bounceX, b.bounced
}

func (b *BulletBounceOnGround) NotifyTileCollided(r collision.Result, c collision.Category) {
	switch {
	case (b.cfg.Count == 0 || b.bounced < b.cfg.Count) &&
		strings.Contains(c.Name, collision.Leg) &&
		b.tick.Elapsed(bounceDelayTick):
		if groundTile(r) {
			b.bounce(r)
		}
	case strings.HasPrefix(c.Name, collision.Knee):
		b.turn(r)
	}
}

func groundTile(r collision.Result) bool {
	return r.ContainsY(collision.Ground) ||
		r.ContainsY(collision.Slope) ||
		r.ContainsY(collision.Incline) ||
		r.ContainsY(collision.Block)
}

func (b *BulletBounceOnGround) bounce(r collision.Result) {
	t := b.m.Transform
	height := common.Clamp(abs(t.OldY-t.Y)*0.75, 0, bounceMax)
	if height > 0.5 && b.m.Services.IsViewable(t) {
		b.m.Services.PlaySfx(b.cfg.Sfx)
	}
	b.m.ResetGravity()
	b.tick.Restart()
	b.m.ApplyTile(r)
	t.TeleportY(t.Y + bounceLift)

	jump := &b.m.Movement.Jump
	side := r.SideX()
	if r.ContainsY(collision.Slope) {
		b.bounceX += bounceSlope * side
		jump.SetDestination(b.bounceX, 0)
	}
	if r.ContainsY(collision.Incline) {
		b.bounceX += bounceIncline * side
		jump.SetDestination(b.bounceX, 0)
	}
	b.bounceX = common.Clamp(b.bounceX, -bounceBiasMax, bounceBiasMax)
	jump.SetDirection(b.bounceX, height)
	b.bounced++
}

func (b *BulletBounceOnGround) turn(r collision.Result) {
	t := b.m.Transform
	side := 1.0
	if t.X > t.OldX {
		side = -2
	}
	b.m.ApplyTile(r)
	t.TeleportX(t.X + side)

	d := &b.m.Launchable.Direction
	vx := d.Horizontal()
	d.SetDirection(-vx, d.Vertical())
	d.SetDestination(-vx, 0)
}
