package system

import (
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
)

// Poller refreshes an input device once per frame.
type Poller interface {
	Poll()
}

// InputSystem polls the input devices and takes the player snapshot every
// feature reads during the frame.
type InputSystem struct {
	services *entity.Services
	pollers  []Poller
}

func NewInputSystem(services *entity.Services, pollers ...Poller) *InputSystem {
	return &InputSystem{services: services, pollers: pollers}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, p := range i.pollers {
		p.Poll()
	}
	i.services.Snapshot()
}
