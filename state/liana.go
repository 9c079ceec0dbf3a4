package state

import (
	"strings"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/fsm"
)

const (
	lianaSpeed   = 5.0 / 3.0
	lianaWalkMin = 0.75
	lianaForce   = 0.16
	lianaFrameY  = -2
)

// lianaMemory tracks the liana contacts of the current frame.
type lianaMemory struct {
	on    bool
	left  bool
	right bool
}

func (l *lianaMemory) reset() {
	*l = lianaMemory{}
}

// touch records r and reports whether it is a liana contact.
func (l *lianaMemory) touch(r collision.Result) bool {
	if !r.StartWithY(collision.Liana) {
		return false
	}
	l.on = true
	l.left = l.left || strings.Contains(r.Y, collision.Left)
	l.right = l.right || strings.Contains(r.Y, collision.Right)
	return true
}

func (l *lianaMemory) steep() bool {
	return l.left || l.right
}

// hanging is shared by the states that hold a liana with the hand.
type hanging struct {
	modelState
	liana lianaMemory
}

func (s *hanging) Enter() {
	s.modelState.Enter()
	s.liana.reset()
	if mv := s.m.Movement; mv != nil {
		mv.Move.Velocity = lianaForce
		mv.Move.Direction.X = 0
	}
	if a := s.m.Anim; a != nil {
		a.OffsetX, a.OffsetY = 0, lianaFrameY
	}
}

func (s *hanging) Exit() {
	if a := s.m.Anim; a != nil {
		a.OffsetX, a.OffsetY = 0, 0
	}
}

// OnCollideHand keeps the hand snapped on the liana.
func (s *hanging) OnCollideHand(r collision.Result, _ collision.Category) {
	if s.liana.touch(r) {
		s.m.ApplyTile(r)
		s.m.ResetGravity()
	}
}

func (s *hanging) OnCollideLeg(r collision.Result, _ collision.Category) {
	s.land(r)
}

func (s *hanging) PostUpdate() {
	s.liana.reset()
}

func (s *hanging) leave() bool {
	return !s.liana.on || s.goDown()
}

type LianaIdleState struct {
	hanging
}

func newLianaIdle(c *Context) fsm.State {
	s := &LianaIdleState{hanging{modelState: c.state(LianaIdle)}}
	s.link(LianaSlide, func() bool { return s.liana.steep() && !s.goDown() })
	s.link(LianaWalk, func() bool {
		return s.goHorizontal() && s.m.Movement != nil && abs(s.m.Movement.Move.Horizontal()) > lianaWalkMin
	})
	s.link(LianaSoar, func() bool { return s.liana.on && s.goUp() })
	s.link(AttackLiana, s.fireOnce)
	s.link(Fall, s.leave)
	return s
}

func (s *LianaIdleState) Update(float64) {
	s.walk(lianaSpeed)
}

// Exit drops below the liana when leaving downward.
func (s *LianaIdleState) Exit() {
	s.hanging.Exit()
	if t := s.m.Transform; t != nil && s.goDown() {
		t.TeleportY(t.Y - 1)
	}
}

type LianaWalkState struct {
	hanging
}

func newLianaWalk(c *Context) fsm.State {
	s := &LianaWalkState{hanging{modelState: c.state(LianaWalk)}}
	s.link(LianaIdle, func() bool { return s.liana.on && !s.goHorizontal() })
	s.link(LianaSlide, s.liana.steep)
	s.link(AttackLiana, s.fireOnce)
	s.link(Fall, s.leave)
	return s
}

func (s *LianaWalkState) Update(float64) {
	s.walk(lianaSpeed)
}

// LianaSlideState slides down a steep liana toward its low side.
type LianaSlideState struct {
	hanging
	side float64
}

func newLianaSlide(c *Context) fsm.State {
	s := &LianaSlideState{hanging: hanging{modelState: c.state(LianaSlide)}}
	s.link(LianaIdle, func() bool { return s.liana.on && !s.liana.steep() })
	s.link(AttackLiana, s.fireOnce)
	s.link(Fall, s.leave)
	return s
}

func (s *LianaSlideState) Enter() {
	s.hanging.Enter()
	s.side = 0
}

func (s *LianaSlideState) OnCollideHand(r collision.Result, c collision.Category) {
	s.hanging.OnCollideHand(r, c)
	switch {
	case s.liana.left:
		s.side = -1
	case s.liana.right:
		s.side = 1
	}
}

func (s *LianaSlideState) Update(float64) {
	if mv := s.m.Movement; mv != nil {
		mv.Move.SetDestination(s.side*lianaSpeed, 0)
	}
	s.m.MirrorToward(s.side)
}

// LianaSoarState climbs between a ledge and the liana under it. Entered from
// Border it goes down, otherwise up.
type LianaSoarState struct {
	modelState
	down bool
}

func newLianaSoar(c *Context) fsm.State {
	s := &LianaSoarState{modelState: c.state(LianaSoar)}
	s.link(LianaIdle, func() bool { return s.finished() && s.down })
	s.link(Idle, func() bool { return s.finished() && !s.down })
	return s
}

func (s *LianaSoarState) Enter() {
	s.modelState.Enter()
	s.down = s.m.States != nil && s.m.States.Previous() == Border
	s.m.ZeroMovement()
	if b := s.m.Body; b != nil {
		b.Disabled = true
		b.ResetGravity()
	}
}

func (s *LianaSoarState) Exit() {
	if b := s.m.Body; b != nil {
		b.Disabled = false
	}
	t := s.m.Transform
	if t == nil {
		return
	}
	h := float64(collision.DefaultTileSize)
	if tiles := s.m.Services.Tiles; tiles != nil {
		h = tiles.TileSize()
	}
	if s.down {
		t.TeleportY(t.Y - h)
	} else {
		t.TeleportY(t.Y + h)
	}
}

func (s *LianaSoarState) OnCollideLeg(collision.Result, collision.Category) {}
