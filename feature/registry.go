// Package feature holds the behaviors that can be attached to an entity
// template. Each feature is built from its optional YAML config block.
package feature

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/lionheart/entity"
)

var ErrUnknownFeature = errors.New("feature: unknown feature")

type builder func(n *yaml.Node) (entity.Feature, error)

// configured decodes the node into a fresh C and hands it to build.
func configured[C any](build func(C) entity.Feature) builder {
	return func(n *yaml.Node) (entity.Feature, error) {
		var c C
		if n != nil && n.Kind != 0 {
			if err := n.Decode(&c); err != nil {
				return nil, err
			}
		}
		return build(c), nil
	}
}

func plain(build func() entity.Feature) builder {
	return func(*yaml.Node) (entity.Feature, error) {
		return build(), nil
	}
}

var builders = map[entity.FeatureID]builder{
	entity.FeatureAnimal:           plain(func() entity.Feature { return &Animal{} }),
	entity.FeatureBossNorka2:       plain(func() entity.Feature { return &Marker{} }),
	entity.FeatureBossNorka2Bullet: plain(func() entity.Feature { return &BossNorka2Bullet{} }),
	entity.FeatureBulletBounce:     configured(func(c BounceConfig) entity.Feature { return NewBulletBounceOnGround(c) }),
	entity.FeatureEffect:           plain(func() entity.Feature { return &Effect{} }),
	entity.FeatureExplode5:         configured(func(c Explode5Config) entity.Feature { return NewExplode5(c) }),
	entity.FeatureGhost2:           plain(func() entity.Feature { return &Ghost2{} }),
	entity.FeatureGlue:             plain(func() entity.Feature { return &Glue{} }),
	entity.FeatureHotFireBall:      configured(func(c HotFireBallConfig) entity.Feature { return NewHotFireBall(c) }),
	entity.FeatureHurtable:         configured(func(c HurtableConfig) entity.Feature { return NewHurtable(c) }),
	entity.FeatureLauncher:         configured(func(c LauncherConfig) entity.Feature { return NewLauncher(c) }),
	entity.FeatureNorka:            plain(func() entity.Feature { return &Norka{} }),
	entity.FeatureNorkaPlatform:    plain(func() entity.Feature { return &NorkaPlatform{} }),
	entity.FeaturePatrol:           configured(func(c PatrolConfig) entity.Feature { return NewPatrol(c) }),
	entity.FeaturePillar:           configured(func(c PillarConfig) entity.Feature { return NewPillar(c) }),
	entity.FeatureSheet:            plain(func() entity.Feature { return &Sheet{} }),
	entity.FeatureSpider:           configured(func(c SpiderConfig) entity.Feature { return NewSpider(c) }),
	entity.FeatureSpike:            configured(func(c SpikeConfig) entity.Feature { return NewSpike(c) }),
	entity.FeatureTakeable:         configured(func(c TakeableConfig) entity.Feature { return NewTakeable(c) }),
}

// Known reports whether id names a feature.
func Known(id entity.FeatureID) bool {
	_, ok := builders[id]
	return ok
}

// Build creates a fresh, unprepared feature. n may be nil.
func Build(id entity.FeatureID, n *yaml.Node) (entity.Feature, error) {
	b, ok := builders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, id)
	}
	f, err := b(n)
	if err != nil {
		return nil, fmt.Errorf("feature: %s config: %w", id, err)
	}
	return f, nil
}

// Marker is a feature without behavior. Others test for it by id.
type Marker struct{}

func (*Marker) Prepare(*entity.Model) error { return nil }
