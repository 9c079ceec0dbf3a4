package system

import (
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
)

// DefaultBoundsMargin is how far outside the map an entity may go.
const DefaultBoundsMargin = 64

// BoundsSystem destroys projectiles that left the map and any other entity
// that fell below it. The player is left to the caller.
type BoundsSystem struct {
	services *entity.Services
	margin   float64
}

func NewBoundsSystem(services *entity.Services, margin float64) *BoundsSystem {
	return &BoundsSystem{services: services, margin: margin}
}

func (b *BoundsSystem) Update(w *ecs.World) {
	tiles := b.services.Tiles
	if tiles == nil {
		return
	}
	player, _ := b.services.Player()
	forEachModel(w, func(m *entity.Model) {
		t := m.Transform
		if t == nil || m == player {
			return
		}
		below := t.Y < -b.margin
		outside := t.X < -b.margin || t.X > tiles.Width()+b.margin || t.Y > tiles.Height()+b.margin
		if below || (m.Launchable != nil && outside) {
			m.Destroy()
		}
	})
}
