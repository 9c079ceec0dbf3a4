package state

import (
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/fsm"
)

// HurtState plays the hurt animation while the hurtable feature recovers.
type HurtState struct {
	modelState
}

func newHurt(c *Context) fsm.State {
	s := &HurtState{modelState: c.state(Hurt)}
	s.link(Fall, func() bool { return s.recovered() && s.falling() })
	s.link(fsm.StateLast, s.recovered)
	return s
}

func (s *HurtState) recovered() bool {
	if s.m.Anim != nil && s.m.Anim.Has(string(Hurt)) {
		return s.finished()
	}
	return !s.hurting()
}

func (s *HurtState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
	s.attacking(false)
}

// DeadState is terminal. The hurtable feature decides when the entity is
// destroyed.
type DeadState struct {
	modelState
}

func newDead(c *Context) fsm.State {
	return &DeadState{modelState: c.state(Dead)}
}

func (s *DeadState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
	s.attacking(false)
	if mv := s.m.Movement; mv != nil {
		mv.Jump.Zero()
	}
	h, ok := s.m.Hurtable()
	if b := s.m.Body; b != nil && (!ok || !h.Falls()) {
		b.Disabled = true
		b.ResetGravity()
	}
}

func (s *DeadState) OnCollideKnee(collision.Result, collision.Category) {}
