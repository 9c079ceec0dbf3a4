package entity

import "github.com/milk9111/lionheart/collision"

// FeatureID keys the typed feature table of a model.
type FeatureID string

const (
	FeatureAnimal           FeatureID = "animal"
	FeatureBossNorka2       FeatureID = "boss_norka2"
	FeatureBossNorka2Bullet FeatureID = "boss_norka2_bullet"
	FeatureBulletBounce     FeatureID = "bullet_bounce_on_ground"
	FeatureEffect           FeatureID = "effect"
	FeatureExplode5         FeatureID = "explode5"
	FeatureGhost2           FeatureID = "ghost2"
	FeatureGlue             FeatureID = "glue"
	FeatureHotFireBall      FeatureID = "hot_fire_ball"
	FeatureHurtable         FeatureID = "hurtable"
	FeatureLauncher         FeatureID = "launcher"
	FeatureNorka            FeatureID = "norka"
	FeatureNorkaPlatform    FeatureID = "norka_platform"
	FeaturePatrol           FeatureID = "patrol"
	FeaturePillar           FeatureID = "pillar"
	FeatureSheet            FeatureID = "sheet"
	FeatureSpider           FeatureID = "spider"
	FeatureSpike            FeatureID = "spike"
	FeatureTakeable         FeatureID = "takeable"
)

// Feature is a behavior attached to a model. Prepare runs once after every
// capability and feature of the model exists.
type Feature interface {
	Prepare(m *Model) error
}

// Routine features run every frame after the state machine.
type Routine interface {
	Update(extrp float64)
}

// Recyclable features reset their transient fields each time the model is
// spawned, pooled or not.
type Recyclable interface {
	Recycle()
}

// CollidedListener receives entity contacts. with is the listener's hitbox,
// by is other's.
type CollidedListener interface {
	NotifyCollided(other *Model, with, by collision.Hitbox)
}

// TileCollidedListener receives tile contacts.
type TileCollidedListener interface {
	NotifyTileCollided(r collision.Result, c collision.Category)
}

// Hurter is the cross feature view of a hurtable model.
type Hurter interface {
	Hurt()
	HurtDamages()
	Kill(force bool)
	IsHurting() bool
	IsHurtingBody() bool
	IsDead() bool
	Falls() bool
	Life() int
}

// Mirrorer is implemented by features that own the facing of their model.
type Mirrorer interface {
	ApplyMirror()
}

// Closer is implemented by features that can be shut down by another entity.
type Closer interface {
	Close()
}
