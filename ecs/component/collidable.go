package component

import (
	"slices"

	"github.com/milk9111/lionheart/collision"
)

// Collidable holds the hitboxes tested against other entities.
type Collidable struct {
	Group    int
	Accept   []int
	Hitboxes []collision.Hitbox
	Enabled  bool
}

// SetHitboxes toggles every hitbox whose name starts with prefix.
func (c *Collidable) SetHitboxes(prefix string, on bool) {
	for i := range c.Hitboxes {
		if c.Hitboxes[i].Is(prefix) {
			c.Hitboxes[i].Off = !on
		}
	}
}

func (c *Collidable) Hitbox(prefix string) (collision.Hitbox, bool) {
	i := slices.IndexFunc(c.Hitboxes, func(h collision.Hitbox) bool { return h.Is(prefix) })
	if i < 0 {
		return collision.Hitbox{}, false
	}
	return c.Hitboxes[i], true
}

var CollidableComponent = NewComponent[Collidable]()

// TileCollidable holds the point categories tested against the tile map.
type TileCollidable struct {
	Categories []collision.Category
	Enabled    bool
}

// Apply moves tr to the corrected location of r on the axes r hit.
func (t *TileCollidable) Apply(tr *Transform, r collision.Result) {
	if tr == nil {
		return
	}
	if r.X != "" {
		tr.X = r.SnapX
	}
	if r.Y != "" {
		tr.Y = r.SnapY
	}
}

var TileCollidableComponent = NewComponent[TileCollidable]()
