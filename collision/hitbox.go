package collision

import (
	"slices"
	"strings"

	"github.com/jakecoffman/cp"
)

// Hitbox is a named rectangle relative to an entity's foot center.
type Hitbox struct {
	Name    string  `yaml:"name"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Off     bool    `yaml:"off"`
}

// Bounds places the hitbox at (x, y). Mirrored boxes flip their X offset.
func (h Hitbox) Bounds(x, y float64, mirrored bool) cp.BB {
	ox := h.OffsetX
	if mirrored {
		ox = -ox
	}
	l := x + ox - h.Width/2
	b := y + h.OffsetY
	return cp.BB{L: l, B: b, R: l + h.Width, T: b + h.Height}
}

func (h Hitbox) Is(prefix string) bool {
	return strings.HasPrefix(h.Name, prefix)
}

// Collider is the per frame view of one collidable entity.
type Collider struct {
	ID       uint64
	X, Y     float64
	Mirrored bool
	Group    int
	Accept   []int
	Hitboxes []Hitbox
}

func (c *Collider) accepts(group int) bool {
	return slices.Contains(c.Accept, group)
}

// ResolvePairs visits every overlapping hitbox pair once, in collider id
// order. notify(self, other, with, by) is called for self whenever self
// accepts other's group; with is self's hitbox and by is other's.
func ResolvePairs(cs []Collider, notify func(self, other *Collider, with, by Hitbox)) {
	slices.SortFunc(cs, func(a, b Collider) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	for i := range cs {
		a := &cs[i]
		for j := i + 1; j < len(cs); j++ {
			b := &cs[j]
			aAccepts, bAccepts := a.accepts(b.Group), b.accepts(a.Group)
			if !aAccepts && !bAccepts {
				continue
			}
			for _, ha := range a.Hitboxes {
				if ha.Off {
					continue
				}
				boxA := ha.Bounds(a.X, a.Y, a.Mirrored)
				for _, hb := range b.Hitboxes {
					if hb.Off || !boxA.Intersects(hb.Bounds(b.X, b.Y, b.Mirrored)) {
						continue
					}
					if aAccepts {
						notify(a, b, ha, hb)
					}
					if bAccepts {
						notify(b, a, hb, ha)
					}
				}
			}
		}
	}
}
