package system

import (
	"slices"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
)

// CollisionSystem tests the hitboxes of every enabled collidable against the
// others. Locations and hitboxes are taken before the first notification, so
// reactions during the pass do not change what is tested.
type CollisionSystem struct {
	colliders []collision.Collider
	models    map[uint64]*entity.Model
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{models: make(map[uint64]*entity.Model)}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	s.colliders = s.colliders[:0]
	clear(s.models)
	forEachModel(w, func(m *entity.Model) {
		c := m.Collidable
		if m.Transform == nil || c == nil || !c.Enabled {
			return
		}
		id := uint64(m.Entity)
		s.models[id] = m
		s.colliders = append(s.colliders, collision.Collider{
			ID:       id,
			X:        m.Transform.X,
			Y:        m.Transform.Y,
			Mirrored: m.Mirrored(),
			Group:    c.Group,
			Accept:   c.Accept,
			Hitboxes: slices.Clone(c.Hitboxes),
		})
	})
	collision.ResolvePairs(s.colliders, func(self, other *collision.Collider, with, by collision.Hitbox) {
		s.models[self.ID].NotifyCollided(s.models[other.ID], with, by)
	})
}
