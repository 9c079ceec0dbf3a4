// Package fsm drives the per entity state machine. A state owns an ordered
// transition table; the handler applies at most one transition per frame.
package fsm

import (
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
)

type StateID string

// StateLast targets the previously active state.
const StateLast StateID = "last"

// Predicate gates a transition. It must only read entity data.
type Predicate func() bool

type Transition struct {
	Target StateID
	When   Predicate
}

// Contacts are the collision flags raised during the collision phase of the
// current frame. They are cleared after the transition table was evaluated
// and when a state is entered.
type Contacts struct {
	CollideX    bool
	CollideY    bool
	CollideHand bool
}

func (c *Contacts) Reset() {
	*c = Contacts{}
}

// State is one node of an entity's machine. Concrete states embed Base.
type State interface {
	ID() StateID
	Enter()
	Update(extrp float64)
	PostUpdate()
	Exit()
	OnCollideLeg(r collision.Result, c collision.Category)
	OnCollideKnee(r collision.Result, c collision.Category)
	OnCollideHand(r collision.Result, c collision.Category)
	OnCollided(other ecs.Entity, with, by collision.Hitbox)

	base() *Base
}

// Base provides no-op hooks, the transition table and the contact flags.
type Base struct {
	id          StateID
	transitions []Transition
	Contacts    Contacts
}

func NewBase(id StateID) Base {
	return Base{id: id}
}

func (b *Base) ID() StateID {
	return b.id
}

// AddTransition appends a rule. Rules are evaluated in insertion order and
// the first one that holds wins.
func (b *Base) AddTransition(target StateID, when Predicate) {
	if when == nil {
		return
	}
	b.transitions = append(b.transitions, Transition{Target: target, When: when})
}

func (b *Base) Transitions() []Transition {
	return append([]Transition(nil), b.transitions...)
}

// Enter clears the contact flags. Overrides must call it.
func (b *Base) Enter() {
	b.Contacts.Reset()
}

func (b *Base) Update(float64) {}
func (b *Base) PostUpdate()    {}
func (b *Base) Exit()          {}

func (b *Base) OnCollideLeg(collision.Result, collision.Category)         {}
func (b *Base) OnCollideKnee(collision.Result, collision.Category)        {}
func (b *Base) OnCollideHand(collision.Result, collision.Category)        {}
func (b *Base) OnCollided(ecs.Entity, collision.Hitbox, collision.Hitbox) {}

func (b *Base) base() *Base {
	return b
}

// next evaluates the table once.
func (b *Base) next() (StateID, bool) {
	for _, t := range b.transitions {
		if t.When() {
			return t.Target, true
		}
	}
	return "", false
}
