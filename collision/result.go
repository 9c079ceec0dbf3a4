package collision

import "strings"

type Axis int

const (
	AxisY Axis = iota
	AxisX
)

// Category is a named sample point of an entity tested against the tile map.
type Category struct {
	Name    string   `yaml:"name"`
	Axis    Axis     `yaml:"-"`
	OffsetX float64  `yaml:"offset_x"`
	OffsetY float64  `yaml:"offset_y"`
	Accept  []string `yaml:"accept"`
}

// AxisOf returns the axis a category name is resolved on. Knees test walls,
// everything else tests floors.
func AxisOf(name string) Axis {
	if strings.HasPrefix(name, Knee) {
		return AxisX
	}
	return AxisY
}

func (c Category) accepts(tile string) bool {
	if tile == "" {
		return false
	}
	if len(c.Accept) == 0 {
		return true
	}
	for _, a := range c.Accept {
		if strings.HasPrefix(tile, a) {
			return true
		}
	}
	return false
}

// Result describes one tile contact. X and Y hold the tile names hit on the
// matching axis, SnapX and SnapY the corrected entity location.
type Result struct {
	X     string
	Y     string
	SnapX float64
	SnapY float64
	// Side is -1 for a wall hit while moving left, 1 while moving right.
	Side int
}

func (r Result) ContainsX(name string) bool {
	return r.X != "" && strings.Contains(r.X, name)
}

func (r Result) ContainsY(name string) bool {
	return r.Y != "" && strings.Contains(r.Y, name)
}

func (r Result) Contains(name string) bool {
	return r.ContainsX(name) || r.ContainsY(name)
}

func (r Result) StartWithX(prefix string) bool {
	return r.X != "" && strings.HasPrefix(r.X, prefix)
}

func (r Result) StartWithY(prefix string) bool {
	return r.Y != "" && strings.HasPrefix(r.Y, prefix)
}

// SideX returns -1 for left oriented formulas, 1 for right ones and 0 otherwise.
func (r Result) SideX() float64 {
	switch {
	case r.Contains(Left):
		return -1
	case r.Contains(Right):
		return 1
	}
	return 0
}
