package state

import (
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/fsm"
)

// PatrolState walks along the device axes. A patrol feature usually acts as
// the device.
type PatrolState struct {
	modelState
}

func newPatrol(c *Context) fsm.State {
	s := &PatrolState{modelState: c.state(Patrol)}
	s.link(Fall, s.falling)
	return s
}

func (s *PatrolState) Enter() {
	s.modelState.Enter()
	s.restoreWalk()
}

func (s *PatrolState) Update(float64) {
	patrolMove(&s.modelState)
}

func (s *PatrolState) OnCollided(other ecs.Entity, with, by collision.Hitbox) {
	s.glued(other, with, by)
}

func patrolMove(s *modelState) {
	mv := s.m.Movement
	if mv == nil {
		return
	}
	d := s.m.Device()
	mv.Move.SetDirection(d.Horizontal(), d.Vertical())
	mv.Move.SetDestination(d.Horizontal(), d.Vertical())
}

// PatrolCeilState patrols upside down on a ceiling, without gravity.
type PatrolCeilState struct {
	modelState
}

func newPatrolCeil(c *Context) fsm.State {
	return &PatrolCeilState{modelState: c.state(PatrolCeil)}
}

func (s *PatrolCeilState) Enter() {
	s.modelState.Enter()
	if b := s.m.Body; b != nil {
		b.Disabled = true
		b.ResetGravity()
	}
}

func (s *PatrolCeilState) Update(float64) {
	patrolMove(&s.modelState)
}

func (s *PatrolCeilState) Exit() {
	if b := s.m.Body; b != nil {
		b.Disabled = false
	}
}

func (s *PatrolCeilState) OnCollideLeg(collision.Result, collision.Category) {}

// JumpSpiderState is a short hop toward the player.
type JumpSpiderState struct {
	modelState
}

func newJumpSpider(c *Context) fsm.State {
	s := &JumpSpiderState{modelState: c.state(JumpSpider)}
	s.link(Fall, s.descending)
	return s
}

func (s *JumpSpiderState) Enter() {
	s.modelState.Enter()
	s.m.ResetGravity()
	if mv := s.m.Movement; mv != nil {
		mv.Jump.SetDirection(0, JumpHit)
		mv.Jump.SetDestination(0, 0)
	}
}

// TurnState holds still while the turn animation plays, then mirrors the
// owner through its patrol feature.
type TurnState struct {
	modelState
}

func newTurn(c *Context) fsm.State {
	s := &TurnState{modelState: c.state(Turn)}
	s.link(fsm.StateLast, s.finished)
	return s
}

func (s *TurnState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
}

func (s *TurnState) OnCollideLeg(r collision.Result, _ collision.Category) {
	s.m.ApplyTile(r)
}

func (s *TurnState) OnCollided(other ecs.Entity, with, by collision.Hitbox) {
	s.glued(other, with, by)
}

func (s *TurnState) Exit() {
	if p, ok := entity.GetFeature[entity.Mirrorer](s.m, entity.FeaturePatrol); ok {
		p.ApplyMirror()
	}
}
