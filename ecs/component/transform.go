package component

import "github.com/jakecoffman/cp"

// Transform is a foot centered location in a Y up world. Old holds the
// location before the last move.
type Transform struct {
	X, Y       float64
	OldX, OldY float64
	Width      float64
	Height     float64
}

// Teleport moves without producing motion.
func (t *Transform) Teleport(x, y float64) {
	t.X, t.OldX = x, x
	t.Y, t.OldY = y, y
}

func (t *Transform) TeleportX(x float64) {
	t.X, t.OldX = x, x
}

func (t *Transform) TeleportY(y float64) {
	t.Y, t.OldY = y, y
}

// MoveLocation backs up the location then adds every vector scaled by extrp.
func (t *Transform) MoveLocation(extrp float64, vectors ...cp.Vector) {
	t.OldX, t.OldY = t.X, t.Y
	var sum cp.Vector
	for _, v := range vectors {
		sum = sum.Add(v)
	}
	t.X += sum.X * extrp
	t.Y += sum.Y * extrp
}

// MoveLocationX shifts X without touching the backup.
func (t *Transform) MoveLocationX(extrp, vx float64) {
	t.X += vx * extrp
}

// SetLocationY sets Y without touching the backup.
func (t *Transform) SetLocationY(y float64) {
	t.Y = y
}

func (t *Transform) Moved() bool {
	return t.X != t.OldX || t.Y != t.OldY
}

var TransformComponent = NewComponent[Transform]()
