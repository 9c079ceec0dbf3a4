package main

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lionheart/entity"
)

// Rect is a screen space rectangle, Y down.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// screenRect projects a world box through the camera. The world is Y up and
// the camera Y is the vertical center of the view.
func screenRect(bb cp.BB, cam *entity.Camera) Rect {
	top := cam.Y + cam.Height/2 + cam.ShakeY
	return Rect{
		X:      float32(bb.L - cam.X),
		Y:      float32(top - bb.T),
		Width:  float32(bb.R - bb.L),
		Height: float32(bb.T - bb.B),
	}
}

func (r *Rect) Intersects(other *Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// bodyBB is the box of a transform, centered on its foot.
func bodyBB(x, y, w, h float64) cp.BB {
	return cp.BB{L: x - w/2, B: y, R: x + w/2, T: y + h}
}
