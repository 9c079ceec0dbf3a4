package component

import "github.com/milk9111/lionheart/force"

// Movement carries the walk force and the jump force of an entity.
type Movement struct {
	Move force.Force
	Jump force.Force
}

func (m *Movement) Update(extrp float64) {
	m.Move.Update(extrp)
	m.Jump.Update(extrp)
}

var MovementComponent = NewComponent[Movement]()

// Launchable is the direction of a fired projectile.
type Launchable struct {
	Direction force.Force
}

func (l *Launchable) Update(extrp float64) {
	l.Direction.Update(extrp)
}

var LaunchableComponent = NewComponent[Launchable]()
