package spawn

import (
	"slices"

	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/force"
	"github.com/milk9111/lionheart/prefabs"
)

// allocate creates the capability components the template declares.
func allocate(m *entity.Model, c prefabs.ComponentsSpec) {
	if c.Transform != nil {
		m.Transform = &component.Transform{}
	}
	if c.Mirror != nil {
		m.Mirror = &component.Mirror{}
	}
	if c.Body != nil {
		m.Body = &component.Body{}
	}
	if c.Movement != nil {
		m.Movement = &component.Movement{}
	}
	if len(c.Anim) > 0 {
		m.Anim = &component.Animator{}
	}
	if c.Collidable != nil {
		m.Collidable = &component.Collidable{}
	}
	if c.TileCollidable != nil {
		m.TileCollidable = &component.TileCollidable{}
	}
	if c.Control != nil {
		m.Control = &component.Control{}
	}
	if c.Stats != nil {
		m.Stats = &component.Stats{}
	}
	if c.Launchable != nil {
		m.Launchable = &component.Launchable{}
	}
}

// reset writes the template values into the allocated components. Control
// devices and animator listeners are set up once and survive.
func reset(m *entity.Model, t *template) {
	c := t.spec.Components
	if m.Transform != nil {
		*m.Transform = component.Transform{Width: c.Transform.Width, Height: c.Transform.Height}
	}
	if m.Mirror != nil {
		m.Mirror.Set(component.MirrorNone)
		if c.Mirror.Horizontal {
			m.Mirror.Set(component.MirrorHorizontal)
		}
	}
	if m.Body != nil {
		*m.Body = component.Body{Gravity: c.Body.Gravity, GravityMax: c.Body.GravityMax, Disabled: c.Body.Disabled}
	}
	if m.Movement != nil {
		m.Movement.Move = newForce(c.Movement.Move)
		m.Movement.Jump = newForce(c.Movement.Jump)
	}
	if m.Anim != nil {
		m.Anim.Anims = c.Anim
		m.Anim.Reset()
	}
	if m.Collidable != nil {
		*m.Collidable = component.Collidable{
			Group:    c.Collidable.Group,
			Accept:   c.Collidable.Accept,
			Hitboxes: slices.Clone(c.Collidable.Hitboxes),
			Enabled:  !c.Collidable.Disabled,
		}
	}
	if m.TileCollidable != nil {
		*m.TileCollidable = component.TileCollidable{
			Categories: slices.Clone(t.categories),
			Enabled:    true,
		}
	}
	if m.Stats != nil {
		s := c.Stats
		*m.Stats = component.Stats{Health: s.Health, HealthMax: s.HealthMax, Talisment: s.Talisment, Life: s.Life}
	}
	if m.Launchable != nil {
		m.Launchable.Direction = newForce(*c.Launchable)
	}
}

func newForce(s prefabs.ForceSpec) force.Force {
	return force.Force{Velocity: s.Velocity, Sensibility: s.Sensibility}
}

func attach[T any](w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) error {
	if v == nil {
		return nil
	}
	return ecs.Add(w, e, h.Kind(), v)
}

// bind creates a world entity for m and attaches its components.
func bind(w *ecs.World, m *entity.Model) error {
	e := ecs.CreateEntity(w)
	m.World, m.Entity = w, e
	errs := []error{
		attach(w, e, entity.ModelComponent, m),
		attach(w, e, component.TransformComponent, m.Transform),
		attach(w, e, component.MirrorComponent, m.Mirror),
		attach(w, e, component.BodyComponent, m.Body),
		attach(w, e, component.MovementComponent, m.Movement),
		attach(w, e, component.AnimatorComponent, m.Anim),
		attach(w, e, component.CollidableComponent, m.Collidable),
		attach(w, e, component.TileCollidableComponent, m.TileCollidable),
		attach(w, e, component.ControlComponent, m.Control),
		attach(w, e, component.StatsComponent, m.Stats),
		attach(w, e, component.LaunchableComponent, m.Launchable),
	}
	for _, err := range errs {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return err
		}
	}
	return nil
}
