package system

import (
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
)

// TileCollisionSystem resolves the tile categories of every entity against
// the level map. Each hit is dispatched right away, so a snap from one
// category is seen by the next.
type TileCollisionSystem struct {
	services *entity.Services
}

func NewTileCollisionSystem(services *entity.Services) *TileCollisionSystem {
	return &TileCollisionSystem{services: services}
}

func (s *TileCollisionSystem) Update(w *ecs.World) {
	tiles := s.services.Tiles
	if tiles == nil {
		return
	}
	forEachModel(w, func(m *entity.Model) {
		tc := m.TileCollidable
		if m.Transform == nil || tc == nil || !tc.Enabled {
			return
		}
		for _, c := range tc.Categories {
			t := m.Transform
			if r, ok := tiles.Resolve(t.X, t.Y, t.OldX, t.OldY, c); ok {
				m.NotifyTileCollided(r, c)
			}
		}
	})
}
