package component

import "github.com/jakecoffman/cp"

// gravityFrames is the number of frames a body needs to reach its
// Gravity as fall speed.
const gravityFrames = 30

// Body accumulates a downward speed. Vy is negative while falling.
type Body struct {
	Gravity    float64
	GravityMax float64
	Vy         float64
	Disabled   bool
}

func (b *Body) Update(extrp float64) {
	if b.Disabled || b.Gravity <= 0 {
		return
	}
	b.Vy -= b.Gravity / gravityFrames * extrp
	limit := b.GravityMax
	if limit <= 0 {
		limit = b.Gravity
	}
	if b.Vy < -limit {
		b.Vy = -limit
	}
}

func (b *Body) ResetGravity() {
	b.Vy = 0
}

func (b *Body) Vector() cp.Vector {
	if b.Disabled {
		return cp.Vector{}
	}
	return cp.Vector{Y: b.Vy}
}

var BodyComponent = NewComponent[Body]()
