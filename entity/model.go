// Package entity holds the context object shared by the states and features
// of one entity.
package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/fsm"
)

var (
	ErrMissingCapability = errors.New("entity: missing capability")
	ErrDuplicateFeature  = errors.New("entity: duplicate feature")
	ErrNoSpawner         = errors.New("entity: no spawner")
)

// Capability names one component slot of a model.
type Capability string

const (
	CapTransform      Capability = "transform"
	CapMirror         Capability = "mirror"
	CapBody           Capability = "body"
	CapMovement       Capability = "movement"
	CapAnim           Capability = "anim"
	CapCollidable     Capability = "collidable"
	CapTileCollidable Capability = "tile_collidable"
	CapControl        Capability = "control"
	CapStats          Capability = "stats"
	CapLaunchable     Capability = "launchable"
	CapStates         Capability = "states"
)

// Model is an entity seen from its states and features. Capability pointers
// are nil when the template does not declare them. The pointed components are
// the ones attached to the world.
type Model struct {
	World    *ecs.World
	Entity   ecs.Entity
	Name     string
	Services *Services

	Transform      *component.Transform
	Mirror         *component.Mirror
	Body           *component.Body
	Movement       *component.Movement
	Anim           *component.Animator
	Collidable     *component.Collidable
	TileCollidable *component.TileCollidable
	Control        *component.Control
	Stats          *component.Stats
	Launchable     *component.Launchable
	States         *fsm.Handler

	features      []Feature
	byID          map[FeatureID]Feature
	ids           []FeatureID
	onDestroy     []func(*Model)
	onCollided    []func(other *Model, with, by collision.Hitbox)
	onTileCollide []func(r collision.Result, c collision.Category)
}

var ModelComponent = component.NewComponent[Model]()

// ModelOf returns the model attached to e.
func ModelOf(w *ecs.World, e ecs.Entity) (*Model, bool) {
	return ecs.Get(w, e, ModelComponent.Kind())
}

func (m *Model) Has(c Capability) bool {
	switch c {
	case CapTransform:
		return m.Transform != nil
	case CapMirror:
		return m.Mirror != nil
	case CapBody:
		return m.Body != nil
	case CapMovement:
		return m.Movement != nil
	case CapAnim:
		return m.Anim != nil
	case CapCollidable:
		return m.Collidable != nil
	case CapTileCollidable:
		return m.TileCollidable != nil
	case CapControl:
		return m.Control != nil
	case CapStats:
		return m.Stats != nil
	case CapLaunchable:
		return m.Launchable != nil
	case CapStates:
		return m.States != nil
	}
	return false
}

// Require fails with ErrMissingCapability naming owner and the first
// missing capability.
func (m *Model) Require(owner string, caps ...Capability) error {
	for _, c := range caps {
		if !m.Has(c) {
			return fmt.Errorf("%w: %s of %s needs %s", ErrMissingCapability, owner, m.Name, c)
		}
	}
	return nil
}

// AddFeature appends f. Features update in insertion order.
func (m *Model) AddFeature(id FeatureID, f Feature) error {
	if m.byID == nil {
		m.byID = make(map[FeatureID]Feature)
	}
	if _, ok := m.byID[id]; ok {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateFeature, id, m.Name)
	}
	m.byID[id] = f
	m.ids = append(m.ids, id)
	m.features = append(m.features, f)
	return nil
}

func (m *Model) Feature(id FeatureID) (Feature, bool) {
	if m == nil {
		return nil, false
	}
	f, ok := m.byID[id]
	return f, ok
}

func (m *Model) HasFeature(id FeatureID) bool {
	_, ok := m.Feature(id)
	return ok
}

func (m *Model) Features() []Feature {
	return m.features
}

func (m *Model) FeatureIDs() []FeatureID {
	return m.ids
}

// GetFeature looks a feature up by id and asserts it to T.
func GetFeature[T any](m *Model, id FeatureID) (T, bool) {
	var zero T
	f, ok := m.Feature(id)
	if !ok {
		return zero, false
	}
	t, ok := f.(T)
	return t, ok
}

// Alive reports whether the model is attached and not queued for reaping.
func (m *Model) Alive() bool {
	return m != nil && m.World != nil && ecs.IsAlive(m.World, m.Entity) && !ecs.IsQueued(m.World, m.Entity)
}

// Destroy queues the entity for the end of frame reap.
func (m *Model) Destroy() {
	if m == nil || m.World == nil {
		return
	}
	ecs.QueueDestroy(m.World, m.Entity)
}

// AddDestroyListener registers fn to run when the entity is reaped. Listeners
// are dropped after they ran.
func (m *Model) AddDestroyListener(fn func(*Model)) {
	if fn != nil {
		m.onDestroy = append(m.onDestroy, fn)
	}
}

// NotifyDestroyed runs and clears the destroy listeners.
func (m *Model) NotifyDestroyed() {
	listeners := m.onDestroy
	m.onDestroy = nil
	for _, fn := range listeners {
		fn(m)
	}
}

// AddCollidedListener registers an extra entity contact listener, used by
// features of other entities.
func (m *Model) AddCollidedListener(fn func(other *Model, with, by collision.Hitbox)) {
	if fn != nil {
		m.onCollided = append(m.onCollided, fn)
	}
}

func (m *Model) AddTileCollidedListener(fn func(r collision.Result, c collision.Category)) {
	if fn != nil {
		m.onTileCollide = append(m.onTileCollide, fn)
	}
}

// ClearListeners drops every listener registered by other entities.
func (m *Model) ClearListeners() {
	m.onDestroy = nil
	m.onCollided = nil
	m.onTileCollide = nil
}

// NotifyCollided fans a contact out to the state machine, the features and
// the extra listeners, in that order.
func (m *Model) NotifyCollided(other *Model, with, by collision.Hitbox) {
	if m.States != nil && other != nil {
		m.States.NotifyCollided(other.Entity, with, by)
	}
	for _, f := range m.features {
		if l, ok := f.(CollidedListener); ok {
			l.NotifyCollided(other, with, by)
		}
	}
	for _, fn := range m.onCollided {
		fn(other, with, by)
	}
}

// NotifyTileCollided dispatches a tile contact by category name.
func (m *Model) NotifyTileCollided(r collision.Result, c collision.Category) {
	if m.States != nil {
		switch {
		case c.Axis == collision.AxisX:
			m.States.NotifyKnee(r, c)
		case strings.HasPrefix(c.Name, collision.Hand):
			m.States.NotifyHand(r, c)
		default:
			m.States.NotifyLeg(r, c)
		}
	}
	for _, f := range m.features {
		if l, ok := f.(TileCollidedListener); ok {
			l.NotifyTileCollided(r, c)
		}
	}
	for _, fn := range m.onTileCollide {
		fn(r, c)
	}
}

// Update runs every routine feature.
func (m *Model) Update(extrp float64) {
	for _, f := range m.features {
		if r, ok := f.(Routine); ok {
			r.Update(extrp)
		}
	}
}

// Recycle resets every recyclable feature.
func (m *Model) Recycle() {
	for _, f := range m.features {
		if r, ok := f.(Recyclable); ok {
			r.Recycle()
		}
	}
}

// Prepare wires every feature. The first failure is returned.
func (m *Model) Prepare() error {
	for i, f := range m.features {
		if err := f.Prepare(m); err != nil {
			return fmt.Errorf("entity: prepare %s on %s: %w", m.ids[i], m.Name, err)
		}
	}
	return nil
}
