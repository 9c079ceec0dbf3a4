package system

import (
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
)

type AnimationSystem struct {
	extrp float64
}

func NewAnimationSystem(extrp float64) *AnimationSystem {
	return &AnimationSystem{extrp: extrp}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(_ ecs.Entity, anim *component.Animator) {
		anim.Update(a.extrp)
	})
}
