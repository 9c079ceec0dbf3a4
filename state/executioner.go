package state

import (
	"github.com/milk9111/lionheart/fsm"
	"github.com/milk9111/lionheart/tick"
)

const (
	executionerPrepareTick = 20
	executionerAttack2Max  = 64
)

type ExecutionerAttackPrepareState struct {
	modelState
	tick tick.Tick
}

func newExecutionerAttackPrepare(c *Context) fsm.State {
	s := &ExecutionerAttackPrepareState{modelState: c.state(ExecutionerAttackPrepare)}
	s.link(ExecutionerAttack1, func() bool { return s.ready() && !s.close() })
	s.link(ExecutionerAttack2, func() bool { return s.ready() && s.close() })
	return s
}

func (s *ExecutionerAttackPrepareState) Enter() {
	s.modelState.Enter()
	s.m.ZeroMovement()
	s.tick.Restart()
}

func (s *ExecutionerAttackPrepareState) Update(extrp float64) {
	s.tick.Update(extrp)
	if dx, _, ok := s.playerDistance(); ok {
		s.m.MirrorToward(dx)
	}
}

func (s *ExecutionerAttackPrepareState) Exit() {
	s.tick.Stop()
}

func (s *ExecutionerAttackPrepareState) ready() bool {
	return s.tick.Elapsed(executionerPrepareTick) && s.finished()
}

func (s *ExecutionerAttackPrepareState) close() bool {
	dx, _, ok := s.playerDistance()
	return ok && abs(dx) <= executionerAttack2Max
}

type ExecutionerAttackState struct {
	strike
}

func newExecutionerAttack1(c *Context) fsm.State {
	return newExecutionerAttack(c, ExecutionerAttack1)
}

func newExecutionerAttack2(c *Context) fsm.State {
	return newExecutionerAttack(c, ExecutionerAttack2)
}

func newExecutionerAttack(c *Context, id fsm.StateID) fsm.State {
	s := &ExecutionerAttackState{strike{modelState: c.state(id)}}
	s.link(Patrol, s.finished)
	s.link(Idle, s.finished)
	return s
}
