package state

import (
	"math"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/fsm"
)

// modelState is embedded by every concrete state. It plays the state's
// animation on entry and lands on ground tiles by default.
type modelState struct {
	fsm.Base
	m        *entity.Model
	declared map[fsm.StateID]bool

	walkVelocity float64
}

func (c *Context) state(id fsm.StateID) modelState {
	s := modelState{Base: fsm.NewBase(id), m: c.model, declared: c.declared}
	if mv := c.model.Movement; mv != nil {
		s.walkVelocity = mv.Move.Velocity
	}
	return s
}

// link adds a transition only when the entity declares the target.
func (s *modelState) link(target fsm.StateID, when fsm.Predicate) {
	if target != fsm.StateLast && !s.declared[target] {
		return
	}
	s.AddTransition(target, when)
}

func (s *modelState) Enter() {
	s.Base.Enter()
	s.m.PlayAnim(string(s.ID()))
}

func (s *modelState) OnCollideLeg(r collision.Result, _ collision.Category) {
	s.land(r)
}

func (s *modelState) OnCollideKnee(r collision.Result, _ collision.Category) {
	s.m.ApplyTile(r)
}

func (s *modelState) OnCollided(ecs.Entity, collision.Hitbox, collision.Hitbox) {}

func (s *modelState) land(r collision.Result) {
	s.m.ApplyTile(r)
	s.m.ResetGravity()
	if mv := s.m.Movement; mv != nil {
		mv.Jump.Zero()
	}
}

// restoreWalk puts back the walk force tuning the template declared.
func (s *modelState) restoreWalk() {
	if mv := s.m.Movement; mv != nil {
		mv.Move.Velocity = s.walkVelocity
	}
}

func (s *modelState) walk(speed float64) {
	h := s.horizontal()
	if mv := s.m.Movement; mv != nil {
		mv.Move.SetDestination(h*speed, 0)
	}
	s.m.MirrorToward(h)
}

func (s *modelState) horizontal() float64 { return s.m.Device().Horizontal() }
func (s *modelState) vertical() float64   { return s.m.Device().Vertical() }

func (s *modelState) goHorizontal() bool { return s.horizontal() != 0 }
func (s *modelState) goUp() bool         { return s.vertical() > 0 }
func (s *modelState) goDown() bool       { return s.vertical() < 0 }
func (s *modelState) fire() bool         { return s.m.Device().Fire() }
func (s *modelState) fireOnce() bool     { return s.m.Device().FireOnce() }
func (s *modelState) finished() bool     { return s.m.AnimFinished() }

// falling is true when gravity moved the entity without a leg contact.
func (s *modelState) falling() bool {
	b, t := s.m.Body, s.m.Transform
	if b == nil || t == nil || b.Disabled || b.Gravity <= 0 {
		return false
	}
	return !s.Contacts.CollideY && t.Y != t.OldY
}

func (s *modelState) descending() bool {
	t := s.m.Transform
	return t != nil && t.Y < t.OldY
}

func (s *modelState) grounded() bool {
	return s.Contacts.CollideY
}

// onBorder is true when the front foot stands over an empty tile.
func (s *modelState) onBorder() bool {
	t, tiles := s.m.Transform, s.m.Services.Tiles
	if t == nil || tiles == nil || !s.Contacts.CollideY {
		return false
	}
	front := t.X + t.Width/2
	if s.m.Mirrored() {
		front = t.X - t.Width/2
	}
	return tiles.At(front, t.Y-1) == "" && tiles.At(t.X, t.Y-1) != ""
}

func (s *modelState) playerDistance() (dx, dy float64, ok bool) {
	v := s.m.Services.PlayerView()
	if !v.Found || s.m.Transform == nil {
		return 0, 0, false
	}
	return v.X - s.m.Transform.X, v.Y - s.m.Transform.Y, true
}

func (s *modelState) attacking(on bool) {
	if c := s.m.Collidable; c != nil {
		c.SetHitboxes(collision.Attack, on)
	}
}

func (s *modelState) hurting() bool {
	h, ok := s.m.Hurtable()
	return ok && h.IsHurting()
}

// glued raises the leg flag when the entity stands on a glue platform.
func (s *modelState) glued(other ecs.Entity, with, by collision.Hitbox) {
	if !with.Is(collision.Leg) {
		return
	}
	if o, ok := entity.ModelOf(s.m.World, other); ok && o.HasFeature(entity.FeatureGlue) {
		s.Contacts.CollideY = true
	}
}

func abs(v float64) float64 { return math.Abs(v) }
