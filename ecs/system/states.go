package system

import (
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
)

// StateSystem runs the active state of every entity.
type StateSystem struct {
	extrp float64
}

func NewStateSystem(extrp float64) *StateSystem {
	return &StateSystem{extrp: extrp}
}

func (s *StateSystem) Update(w *ecs.World) {
	forEachModel(w, func(m *entity.Model) {
		if m.States != nil {
			m.States.Update(s.extrp)
		}
	})
}

// TransitionSystem evaluates the transition tables once collisions of the
// frame were dispatched.
type TransitionSystem struct{}

func NewTransitionSystem() *TransitionSystem {
	return &TransitionSystem{}
}

func (s *TransitionSystem) Update(w *ecs.World) {
	forEachModel(w, func(m *entity.Model) {
		if m.States != nil {
			m.States.PostUpdate()
		}
	})
}

// FeatureSystem runs the features after the state machines settled.
type FeatureSystem struct {
	extrp float64
}

func NewFeatureSystem(extrp float64) *FeatureSystem {
	return &FeatureSystem{extrp: extrp}
}

func (s *FeatureSystem) Update(w *ecs.World) {
	forEachModel(w, func(m *entity.Model) {
		m.Update(s.extrp)
	})
}

// forEachModel visits the models not queued for destruction, in entity
// order.
func forEachModel(w *ecs.World, fn func(m *entity.Model)) {
	ecs.ForEach(w, entity.ModelComponent.Kind(), func(_ ecs.Entity, m *entity.Model) {
		if m.Alive() {
			fn(m)
		}
	})
}
