package feature

import (
	"math"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/state"
)

const (
	animalSpeedGround = 2.5
	animalSpeedBoat   = 0.5
	animalBoatX       = 8544
	animalShakeMin    = -16
	animalShakeMax    = 16
	animalShakeStep   = 0.75
	animalCameraY     = 64
	cameraMarginH     = 64
)

// animalFrameOffsets is the vertical bob of the rider per animal frame.
var animalFrameOffsets = map[int]float64{
	1:  -1,
	2:  -2,
	3:  -3,
	4:  -1,
	5:  1,
	6:  1,
	7:  1,
	8:  -1,
	9:  -2,
	10: -3,
	12: 1,
	13: 1,
	14: 1,
}

// Animal is a mount. The player rides it once its leg touches the animal
// hitbox and gets off on its first tile contact.
type Animal struct {
	m *entity.Model

	hooked  ecs.Entity
	on      bool
	shake   float64
	offsetY float64
}

func (a *Animal) Prepare(m *entity.Model) error {
	a.m = m
	return m.Require(string(entity.FeatureAnimal), entity.CapTransform, entity.CapAnim)
}

func (a *Animal) Recycle() {
	a.on = false
	a.shake = 0
	a.offsetY = 0
}

func (a *Animal) Riding() bool {
	return a.on
}

// hook listens to the contacts of the current player once per player life.
func (a *Animal) hook(p *entity.Model) {
	if a.hooked == p.Entity {
		return
	}
	a.hooked = p.Entity
	p.AddTileCollidedListener(func(collision.Result, collision.Category) { a.off(p) })
	p.AddCollidedListener(func(_ *entity.Model, with, by collision.Hitbox) {
		if with.Is(collision.Leg) && by.Is(collision.Ground) {
			a.off(p)
		}
	})
}

func (a *Animal) off(p *entity.Model) {
	if !a.on {
		return
	}
	a.on = false
	if c := a.m.Services.Camera; c != nil {
		c.SetIntervals(cameraMarginH, 0)
		c.Track(p)
	}
	p.ChangeState(state.Idle)
}

func (a *Animal) Update(extrp float64) {
	p, ok := a.m.Services.Player()
	if !ok || p.Transform == nil {
		return
	}
	a.hook(p)
	if a.on {
		a.ride(extrp, p)
	}
	a.m.Transform.X = p.Transform.X
}

func (a *Animal) ride(extrp float64, p *entity.Model) {
	speed := animalSpeedGround
	c := a.m.Services.Camera
	if c != nil && c.X >= animalBoatX {
		speed = animalSpeedBoat
		a.shake = math.Min(a.shake+animalShakeStep, animalShakeMax)
	} else {
		a.shake = animalShakeMin
	}
	if c != nil {
		c.ShakeY = math.Floor(a.shake)
		c.MoveLocation(extrp, speed, 0)
		c.Y = p.Transform.Y - animalCameraY
	}
	p.Transform.MoveLocationX(extrp, speed)

	if p.IsState(state.IdleAnimal) || p.IsState(state.AttackAnimal) {
		if o, ok := animalFrameOffsets[a.m.Anim.Frame()]; ok {
			a.offsetY = o
		}
		if p.Anim != nil {
			p.Anim.OffsetX, p.Anim.OffsetY = 0, a.offsetY
		}
	}
}

func (a *Animal) NotifyCollided(other *entity.Model, with, by collision.Hitbox) {
	if other == nil || other.Transform == nil || !with.Is(collision.Animal) || !by.Is(collision.Leg) {
		return
	}
	other.ChangeState(state.IdleAnimal)
	other.Transform.TeleportY(a.m.Transform.Y + with.OffsetY)
	other.ResetGravity()
	if c := a.m.Services.Camera; c != nil {
		c.SetIntervals(0, 0)
		c.StopTracking()
	}
	other.SetMirror(component.MirrorNone)
	a.on = true
}
