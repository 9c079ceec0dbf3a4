package system

import (
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
)

// CameraSystem raises the water and keeps the tracked entity in view.
type CameraSystem struct {
	services *entity.Services
	extrp    float64
}

func NewCameraSystem(services *entity.Services, extrp float64) *CameraSystem {
	return &CameraSystem{services: services, extrp: extrp}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cs.services.Water.Update(cs.extrp)
	cs.services.Camera.Update()
}
