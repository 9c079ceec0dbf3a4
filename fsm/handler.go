package fsm

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/logger"
)

var (
	ErrDuplicateState    = errors.New("fsm: duplicate state")
	ErrUnknownState      = errors.New("fsm: unknown state")
	ErrIllegalTransition = errors.New("fsm: illegal transition target")
)

// historyMax bounds the states remembered for StateLast.
const historyMax = 8

// Handler holds the states of one entity and the active one.
type Handler struct {
	name      string
	states    map[StateID]State
	order     []StateID
	current   State
	history   []StateID
	listeners []func(from, to StateID)
}

// NewHandler returns an empty handler. name only shows up in logs.
func NewHandler(name string) *Handler {
	return &Handler{name: name, states: make(map[StateID]State)}
}

func (h *Handler) Register(states ...State) error {
	for _, s := range states {
		id := s.ID()
		if _, ok := h.states[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateState, id)
		}
		h.states[id] = s
		h.order = append(h.order, id)
	}
	return nil
}

func (h *Handler) Has(id StateID) bool {
	_, ok := h.states[id]
	return ok
}

func (h *Handler) State(id StateID) (State, bool) {
	s, ok := h.states[id]
	return s, ok
}

// IDs returns the registered states in registration order.
func (h *Handler) IDs() []StateID {
	return append([]StateID(nil), h.order...)
}

// AddTransition appends a rule to a registered state.
func (h *Handler) AddTransition(from, to StateID, when Predicate) error {
	s, ok := h.states[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, from)
	}
	s.base().AddTransition(to, when)
	return nil
}

// Validate reports every transition whose target is not registered.
func (h *Handler) Validate() error {
	var errs []error
	for _, id := range h.order {
		for _, t := range h.states[id].base().transitions {
			if t.Target == StateLast || h.Has(t.Target) {
				continue
			}
			errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, id, t.Target))
		}
	}
	return errors.Join(errs...)
}

// Start enters id without exiting anything and forgets the previous state.
func (h *Handler) Start(id StateID) error {
	s, ok := h.states[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, id)
	}
	h.current = s
	h.history = h.history[:0]
	s.Enter()
	return nil
}

// ChangeState exits the active state and enters id. Changing to the active
// state or to an unregistered one does nothing and returns false. A regular
// change remembers the state it leaves; StateLast goes back to the most
// recent one and forgets it.
func (h *Handler) ChangeState(id StateID) bool {
	back := id == StateLast
	if back {
		id = h.Previous()
	}
	next, ok := h.states[id]
	if !ok {
		return false
	}
	var from StateID
	if h.current != nil {
		from = h.current.ID()
		if from == id {
			return false
		}
		h.current.Exit()
		if back {
			h.history = h.history[:len(h.history)-1]
		} else {
			h.remember(from)
		}
	}
	h.current = next
	next.Enter()

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Log.WithFields(logrus.Fields{
			"entity": h.name,
			"from":   from,
			"to":     id,
		}).Debug("state changed")
	}
	for _, fn := range h.listeners {
		fn(from, id)
	}
	return true
}

func (h *Handler) remember(id StateID) {
	if len(h.history) == historyMax {
		copy(h.history, h.history[1:])
		h.history = h.history[:historyMax-1]
	}
	h.history = append(h.history, id)
}

// AddListener registers fn for every state change.
func (h *Handler) AddListener(fn func(from, to StateID)) {
	if fn != nil {
		h.listeners = append(h.listeners, fn)
	}
}

// ClearListeners drops listeners, used before an instance is rewired.
func (h *Handler) ClearListeners() {
	h.listeners = nil
}

// Update runs the active state.
func (h *Handler) Update(extrp float64) {
	if h.current != nil {
		h.current.Update(extrp)
	}
}

// PostUpdate evaluates the active state's table once with this frame's
// contacts, runs the state's PostUpdate, clears the contacts and applies the
// chosen transition.
func (h *Handler) PostUpdate() {
	cur := h.current
	if cur == nil {
		return
	}
	b := cur.base()
	next, ok := b.next()
	cur.PostUpdate()
	b.Contacts.Reset()
	if ok {
		h.ChangeState(next)
	}
}

func (h *Handler) Current() StateID {
	if h.current == nil {
		return ""
	}
	return h.current.ID()
}

// Previous returns the state StateLast would go back to.
func (h *Handler) Previous() StateID {
	if len(h.history) == 0 {
		return ""
	}
	return h.history[len(h.history)-1]
}

func (h *Handler) IsState(id StateID) bool {
	return h.current != nil && h.current.ID() == id
}

func (h *Handler) IsAnyState(ids ...StateID) bool {
	for _, id := range ids {
		if h.IsState(id) {
			return true
		}
	}
	return false
}

// Contacts returns the active state's flags.
func (h *Handler) Contacts() Contacts {
	if h.current == nil {
		return Contacts{}
	}
	return h.current.base().Contacts
}

func (h *Handler) NotifyLeg(r collision.Result, c collision.Category) {
	if h.current == nil {
		return
	}
	h.current.base().Contacts.CollideY = true
	h.current.OnCollideLeg(r, c)
}

func (h *Handler) NotifyKnee(r collision.Result, c collision.Category) {
	if h.current == nil {
		return
	}
	h.current.base().Contacts.CollideX = true
	h.current.OnCollideKnee(r, c)
}

func (h *Handler) NotifyHand(r collision.Result, c collision.Category) {
	if h.current == nil {
		return
	}
	h.current.base().Contacts.CollideHand = true
	h.current.OnCollideHand(r, c)
}

func (h *Handler) NotifyCollided(other ecs.Entity, with, by collision.Hitbox) {
	if h.current != nil {
		h.current.OnCollided(other, with, by)
	}
}
