// Package force implements the eased movement vector shared by states and
// features.
package force

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Force moves its Direction toward Destination by Velocity per frame. Once an
// axis is within Sensibility of its destination it snaps.
type Force struct {
	Direction   cp.Vector
	Destination cp.Vector
	Velocity    float64
	Sensibility float64
}

func New(velocity, sensibility float64) *Force {
	return &Force{Velocity: velocity, Sensibility: sensibility}
}

func (f *Force) SetDirection(x, y float64) {
	f.Direction = cp.Vector{X: x, Y: y}
}

func (f *Force) SetDestination(x, y float64) {
	f.Destination = cp.Vector{X: x, Y: y}
}

// Zero clears direction and destination. Velocity and sensibility are kept.
func (f *Force) Zero() {
	f.Direction = cp.Vector{}
	f.Destination = cp.Vector{}
}

func (f *Force) Horizontal() float64 {
	return f.Direction.X
}

func (f *Force) Vertical() float64 {
	return f.Direction.Y
}

// Update eases the direction on both axes. A non positive velocity snaps the
// direction to the destination.
func (f *Force) Update(extrp float64) {
	step := f.Velocity * extrp
	f.Direction.X = approach(f.Direction.X, f.Destination.X, step, f.Sensibility)
	f.Direction.Y = approach(f.Direction.Y, f.Destination.Y, step, f.Sensibility)
}

func approach(cur, dst, step, sensibility float64) float64 {
	if step <= 0 {
		return dst
	}
	switch {
	case cur < dst:
		cur = math.Min(cur+step, dst)
	case cur > dst:
		cur = math.Max(cur-step, dst)
	}
	if math.Abs(dst-cur) < sensibility {
		return dst
	}
	return cur
}
