// Package audio plays placeholder sound effects. Each effect is a short
// synthesized tone cached in memory; real samples are out of scope.
package audio

// Sfx identifies a sound effect.
type Sfx string

const (
	EffectExplode     Sfx = "effect_explode"
	EffectTake        Sfx = "effect_take"
	MonsterHurt       Sfx = "monster_hurt"
	MonsterSpider     Sfx = "monster_spider"
	ProjectileBounce  Sfx = "projectile_bounce"
	SceneryFireBall   Sfx = "scenery_fireball"
	ScenerySpike      Sfx = "scenery_spike"
	ValdynHurt        Sfx = "valdyn_hurt"
	ValdynSword       Sfx = "valdyn_sword"
	BossNorkaDefeated Sfx = "boss_norka_defeated"
)

// All lists every known effect, the default pre-warm set.
func All() []Sfx {
	return []Sfx{
		EffectExplode,
		EffectTake,
		MonsterHurt,
		MonsterSpider,
		ProjectileBounce,
		SceneryFireBall,
		ScenerySpike,
		ValdynHurt,
		ValdynSword,
		BossNorkaDefeated,
	}
}

// Settings is the audio part of the user settings.
type Settings struct {
	// VolumeSfx goes from 0 (muted) to 100.
	VolumeSfx int
}
