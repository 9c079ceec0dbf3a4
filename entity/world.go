package entity

import "github.com/milk9111/lionheart/ecs/component"

// Water is the rising water of the boss arena. It moves toward RaiseMax at
// Speed; a negative RaiseMax drains it.
type Water struct {
	Height   float64
	Speed    float64
	RaiseMax float64
}

func (w *Water) Update(extrp float64) {
	if w == nil || w.Speed <= 0 {
		return
	}
	step := w.Speed * extrp
	switch {
	case w.Height < w.RaiseMax:
		w.Height = min(w.Height+step, w.RaiseMax)
	case w.Height > w.RaiseMax:
		w.Height = max(w.Height-step, w.RaiseMax)
	}
}

// Camera follows a tracked model outside of its intervals. ShakeY is an
// extra vertical offset applied when drawing.
type Camera struct {
	X, Y      float64
	Width     float64
	Height    float64
	ShakeY    float64
	IntervalH float64
	IntervalV float64

	tracked *Model
}

func (c *Camera) Track(m *Model) {
	c.tracked = m
}

func (c *Camera) StopTracking() {
	c.tracked = nil
}

func (c *Camera) Tracking() bool {
	return c.tracked != nil
}

func (c *Camera) SetIntervals(h, v float64) {
	c.IntervalH, c.IntervalV = h, v
}

// CenterOn moves the camera so (x, y) is in the middle of the view.
func (c *Camera) CenterOn(x, y float64) {
	c.X = max(0, x-c.Width/2)
	c.Y = y
}

// IsViewable reports whether t overlaps the view. X is the left edge of the
// view and Y its vertical center.
func (c *Camera) IsViewable(t *component.Transform) bool {
	if c == nil || t == nil {
		return false
	}
	half := t.Width / 2
	return t.X+half >= c.X && t.X-half <= c.X+c.Width &&
		t.Y+t.Height >= c.Y-c.Height/2 && t.Y <= c.Y+c.Height/2
}

func (c *Camera) MoveLocation(extrp, vx, vy float64) {
	c.X += vx * extrp
	c.Y += vy * extrp
}

// Update keeps the tracked model within the intervals around the center.
func (c *Camera) Update() {
	if c == nil || c.tracked == nil || c.tracked.Transform == nil {
		return
	}
	t := c.tracked.Transform
	cx := c.X + c.Width/2
	switch {
	case t.X > cx+c.IntervalH:
		c.X += t.X - (cx + c.IntervalH)
	case t.X < cx-c.IntervalH:
		c.X += t.X - (cx - c.IntervalH)
	}
	switch {
	case t.Y > c.Y+c.IntervalV:
		c.Y = t.Y - c.IntervalV
	case t.Y < c.Y-c.IntervalV:
		c.Y = t.Y + c.IntervalV
	}
	if c.X < 0 {
		c.X = 0
	}
}
