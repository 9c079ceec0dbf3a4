package state

import (
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/fsm"
)

type IdleState struct {
	modelState
}

func newIdle(c *Context) fsm.State {
	s := &IdleState{modelState: c.state(Idle)}
	s.link(Walk, s.goHorizontal)
	s.link(Crouch, s.goDown)
	s.link(Jump, s.goUp)
	s.link(AttackPrepare, s.fire)
	s.link(Border, s.onBorder)
	s.link(Fall, s.falling)
	return s
}

func (s *IdleState) Enter() {
	s.modelState.Enter()
	s.restoreWalk()
	if mv := s.m.Movement; mv != nil {
		mv.Move.SetDestination(0, 0)
	}
}

func (s *IdleState) OnCollided(other ecs.Entity, with, by collision.Hitbox) {
	s.glued(other, with, by)
}

type WalkState struct {
	modelState
}

func newWalk(c *Context) fsm.State {
	s := &WalkState{modelState: c.state(Walk)}
	s.link(Idle, func() bool { return !s.goHorizontal() })
	s.link(Crouch, s.goDown)
	s.link(Jump, s.goUp)
	s.link(AttackPrepare, s.fire)
	s.link(Fall, s.falling)
	return s
}

func (s *WalkState) Enter() {
	s.modelState.Enter()
	s.restoreWalk()
}

func (s *WalkState) Update(float64) {
	s.walk(WalkSpeed)
}

func (s *WalkState) OnCollided(other ecs.Entity, with, by collision.Hitbox) {
	s.glued(other, with, by)
}

type CrouchState struct {
	modelState
}

func newCrouch(c *Context) fsm.State {
	s := &CrouchState{modelState: c.state(Crouch)}
	s.link(Idle, func() bool { return !s.goDown() })
	s.link(AttackCrouchPrepare, s.fire)
	s.link(Fall, s.falling)
	return s
}

func (s *CrouchState) Enter() {
	s.modelState.Enter()
	s.restoreWalk()
	s.m.ZeroMovement()
}

func (s *CrouchState) Update(float64) {
	s.m.MirrorToward(s.horizontal())
}

type JumpState struct {
	modelState
}

func newJump(c *Context) fsm.State {
	s := &JumpState{modelState: c.state(Jump)}
	s.link(Fall, s.descending)
	return s
}

func (s *JumpState) Enter() {
	s.modelState.Enter()
	s.restoreWalk()
	s.m.ResetGravity()
	if mv := s.m.Movement; mv != nil {
		mv.Jump.SetDirection(0, JumpMax)
		mv.Jump.SetDestination(0, 0)
	}
}

// Update walks in the air. Releasing up cuts the jump to its minimum height.
func (s *JumpState) Update(float64) {
	s.walk(WalkSpeed)
	if mv := s.m.Movement; mv != nil && !s.goUp() && mv.Jump.Direction.Y > JumpMin {
		mv.Jump.Direction.Y = JumpMin
	}
}

type FallState struct {
	modelState
	liana lianaMemory
}

func newFall(c *Context) fsm.State {
	s := &FallState{modelState: c.state(Fall)}
	s.link(LianaIdle, func() bool { return s.liana.on && !s.goDown() })
	s.link(Patrol, s.grounded)
	s.link(Idle, func() bool { return s.grounded() && !s.goHorizontal() })
	s.link(Walk, func() bool { return s.grounded() && s.goHorizontal() })
	return s
}

func (s *FallState) Enter() {
	s.modelState.Enter()
	s.restoreWalk()
	s.liana.reset()
}

func (s *FallState) Update(float64) {
	if s.m.Control != nil {
		s.walk(WalkSpeed)
	}
}

func (s *FallState) OnCollideHand(r collision.Result, _ collision.Category) {
	if s.liana.touch(r) {
		s.m.ApplyTile(r)
		s.m.ResetGravity()
	}
}

func (s *FallState) OnCollided(other ecs.Entity, with, by collision.Hitbox) {
	s.glued(other, with, by)
}

func (s *FallState) PostUpdate() {
	s.liana.reset()
}

// BorderState is standing with the front foot over the void.
type BorderState struct {
	modelState
	liana  lianaMemory
	entryY float64
}

func newBorder(c *Context) fsm.State {
	s := &BorderState{modelState: c.state(Border)}
	s.link(Walk, s.goHorizontal)
	s.link(Crouch, func() bool { return s.goDown() && !s.liana.on })
	s.link(Jump, s.goUp)
	s.link(AttackPrepare, s.fire)
	s.link(LianaSoar, func() bool { return s.goDown() && s.liana.on })
	s.link(Fall, func() bool {
		return !s.Contacts.CollideY && s.m.Transform != nil && s.m.Transform.Y != s.entryY
	})
	return s
}

func (s *BorderState) Enter() {
	s.modelState.Enter()
	if mv := s.m.Movement; mv != nil {
		mv.Move.Zero()
		mv.Move.Velocity = s.walkVelocity
	}
	s.liana.reset()
	if s.m.Transform != nil {
		s.entryY = s.m.Transform.Y
	}
}

func (s *BorderState) OnCollideLeg(r collision.Result, _ collision.Category) {
	s.land(r)
	s.liana.touch(r)
}

func (s *BorderState) OnCollided(other ecs.Entity, with, by collision.Hitbox) {
	s.glued(other, with, by)
}

func (s *BorderState) PostUpdate() {
	s.liana.reset()
}

// DecayState is a terminal state that only plays its animation.
type DecayState struct {
	modelState
}

func newDecay(c *Context) fsm.State {
	return &DecayState{modelState: c.state(Decay)}
}

func (s *DecayState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
}
