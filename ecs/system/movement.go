package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
)

// MovementSystem eases the forces of every entity and moves its transform by
// their sum. Entities without a body, movement or launchable move themselves.
type MovementSystem struct {
	extrp float64
}

func NewMovementSystem(extrp float64) *MovementSystem {
	return &MovementSystem{extrp: extrp}
}

func (s *MovementSystem) Update(w *ecs.World) {
	forEachModel(w, func(m *entity.Model) {
		if m.Transform == nil {
			return
		}
		var buf [4]cp.Vector
		vectors := buf[:0]
		if mv := m.Movement; mv != nil {
			mv.Update(s.extrp)
			vectors = append(vectors, mv.Move.Direction, mv.Jump.Direction)
		}
		if b := m.Body; b != nil {
			b.Update(s.extrp)
			vectors = append(vectors, b.Vector())
		}
		if l := m.Launchable; l != nil {
			l.Update(s.extrp)
			vectors = append(vectors, l.Direction.Direction)
		}
		if len(vectors) == 0 {
			return
		}
		m.Transform.MoveLocation(s.extrp, vectors...)
	})
}
