package feature

import (
	"math"

	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/logger"
)

// handle remembers which life of a pooled model a feature spawned.
type handle struct {
	m *entity.Model
	e ecs.Entity
}

func hold(m *entity.Model) handle {
	if m == nil {
		return handle{}
	}
	return handle{m: m, e: m.Entity}
}

func (h handle) alive() bool {
	return h.m != nil && h.m.Entity == h.e && h.m.Alive()
}

func (h handle) destroy() {
	if h.alive() {
		h.m.Destroy()
	}
}

// spawn creates name at x, y and logs failures. Per frame code never
// returns errors.
func spawn(m *entity.Model, name string, x, y float64) *entity.Model {
	if name == "" {
		return nil
	}
	s, err := m.Services.Spawn(name, x, y)
	if err != nil {
		logger.Entity(m.Name, uint64(m.Entity)).WithError(err).Warnf("spawn %s", name)
		return nil
	}
	return s
}

func abs(v float64) float64 { return math.Abs(v) }
