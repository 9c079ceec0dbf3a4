package state

import (
	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/fsm"
)

type AttackPrepareState struct {
	modelState
}

func newAttackPrepare(c *Context) fsm.State {
	s := &AttackPrepareState{modelState: c.state(AttackPrepare)}
	s.link(Attack, s.finished)
	s.link(Idle, func() bool { return !s.fire() })
	s.link(Fall, s.falling)
	return s
}

func (s *AttackPrepareState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
}

type AttackCrouchPrepareState struct {
	modelState
}

func newAttackCrouchPrepare(c *Context) fsm.State {
	s := &AttackCrouchPrepareState{modelState: c.state(AttackCrouchPrepare)}
	s.link(Attack, s.finished)
	s.link(Crouch, func() bool { return !s.fire() })
	s.link(Fall, s.falling)
	return s
}

func (s *AttackCrouchPrepareState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
}

// strike enables the attack hitboxes for the lifetime of a state.
type strike struct {
	modelState
	sfx audio.Sfx
}

func (s *strike) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
	s.attacking(true)
	s.m.Services.PlaySfx(s.sfx)
}

func (s *strike) Exit() {
	s.attacking(false)
}

type AttackState struct {
	strike
}

func newAttack(c *Context) fsm.State {
	s := &AttackState{strike{c.state(Attack), audio.ValdynSword}}
	s.link(Crouch, func() bool { return s.finished() && s.goDown() })
	s.link(Idle, s.finished)
	s.link(Fall, s.falling)
	return s
}

type AttackLianaState struct {
	strike
	liana lianaMemory
}

func newAttackLiana(c *Context) fsm.State {
	s := &AttackLianaState{strike: strike{c.state(AttackLiana), audio.ValdynSword}}
	s.link(LianaIdle, s.finished)
	return s
}

func (s *AttackLianaState) Enter() {
	s.strike.Enter()
	if a := s.m.Anim; a != nil {
		a.OffsetY = lianaFrameY
	}
}

func (s *AttackLianaState) Exit() {
	s.strike.Exit()
	if a := s.m.Anim; a != nil {
		a.OffsetY = 0
	}
}

func (s *AttackLianaState) OnCollideHand(r collision.Result, _ collision.Category) {
	if s.liana.touch(r) {
		s.m.ApplyTile(r)
		s.m.ResetGravity()
	}
}

func (s *AttackLianaState) PostUpdate() {
	s.liana.reset()
}

// IdleAnimalState is riding the animal.
type IdleAnimalState struct {
	modelState
}

func newIdleAnimal(c *Context) fsm.State {
	s := &IdleAnimalState{modelState: c.state(IdleAnimal)}
	s.link(AttackAnimal, s.fireOnce)
	return s
}

func (s *IdleAnimalState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
}

type AttackAnimalState struct {
	strike
}

func newAttackAnimal(c *Context) fsm.State {
	s := &AttackAnimalState{strike{c.state(AttackAnimal), audio.ValdynSword}}
	s.link(IdleAnimal, s.finished)
	return s
}
