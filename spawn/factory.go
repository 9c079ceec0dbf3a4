// Package spawn turns entity descriptors into live entities. Destroyed
// instances are kept per template and reused by the next spawn of the same
// name.
package spawn

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/feature"
	"github.com/milk9111/lionheart/fsm"
	"github.com/milk9111/lionheart/logger"
	"github.com/milk9111/lionheart/prefabs"
	"github.com/milk9111/lionheart/state"
)

// DevicePlayer is the control device name bound to the player input.
const DevicePlayer = "player"

// Loader returns the descriptor called name.
type Loader func(name string) (prefabs.EntitySpec, error)

type Factory struct {
	world    *ecs.World
	services *entity.Services
	load     Loader
	device   component.Device

	templates map[string]*template
	pools     map[string][]*entity.Model
	origin    map[*entity.Model]*template
}

// New returns a factory spawning into w. It registers itself as the spawner
// of services and as a reap hook of w.
func New(w *ecs.World, services *entity.Services) *Factory {
	f := &Factory{
		world:     w,
		services:  services,
		load:      prefabs.LoadEntitySpec,
		templates: make(map[string]*template),
		pools:     make(map[string][]*entity.Model),
		origin:    make(map[*entity.Model]*template),
	}
	if services != nil {
		services.Spawner = f
	}
	w.OnReap(f.reap)
	return f
}

// SetLoader replaces the descriptor source, mostly for tests.
func (f *Factory) SetLoader(l Loader) {
	if l != nil {
		f.load = l
	}
}

// SetPlayerDevice sets the device given to templates declaring the player
// device. Entities already spawned keep theirs.
func (f *Factory) SetPlayerDevice(d component.Device) {
	f.device = d
}

// Invalidate drops the cached template and the pooled instances of name.
// Live instances are not rebuilt; they are discarded when reaped.
func (f *Factory) Invalidate(name string) {
	name = prefabs.TemplateName(name)
	delete(f.templates, name)
	for _, m := range f.pools[name] {
		delete(f.origin, m)
	}
	delete(f.pools, name)
}

// Pooled returns the number of instances of name waiting for reuse.
func (f *Factory) Pooled(name string) int {
	return len(f.pools[prefabs.TemplateName(name)])
}

// Spawn creates an entity of template name with its foot at at. Descriptor
// and setup errors are returned; nothing is left in the world on error.
func (f *Factory) Spawn(name string, at cp.Vector) (*entity.Model, error) {
	t, err := f.template(name)
	if err != nil {
		return nil, err
	}

	m, reused, err := f.instance(t)
	if err != nil {
		return nil, err
	}
	if m.Transform != nil {
		m.Transform.Teleport(at.X, at.Y)
	}
	if m.States != nil {
		if err := m.States.Start(t.initial); err != nil {
			ecs.DestroyEntity(f.world, m.Entity)
			return nil, err
		}
	} else {
		m.PlayAnim("idle")
	}
	m.Recycle()
	f.world.Events().Push(ecs.Event{Type: ecs.EventSpawned, Entity: m.Entity, Name: m.Name})

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Entity(m.Name, uint64(m.Entity)).WithFields(logrus.Fields{
			"x":      at.X,
			"y":      at.Y,
			"reused": reused,
		}).Debug("spawned")
	}
	return m, nil
}

func (f *Factory) template(name string) (*template, error) {
	name = prefabs.TemplateName(name)
	if t, ok := f.templates[name]; ok {
		return t, nil
	}
	spec, err := f.load(name)
	if err != nil {
		return nil, fmt.Errorf("spawn: %s: %w", name, err)
	}
	spec.Name = name
	t, err := compile(spec)
	if err != nil {
		return nil, err
	}
	f.templates[name] = t
	return t, nil
}

// instance pops a pooled model or builds a fresh one.
func (f *Factory) instance(t *template) (*entity.Model, bool, error) {
	name := t.spec.Name
	if pool := f.pools[name]; len(pool) > 0 {
		m := pool[len(pool)-1]
		f.pools[name] = pool[:len(pool)-1]
		reset(m, t)
		if err := bind(f.world, m); err != nil {
			return nil, false, err
		}
		return m, true, nil
	}
	m, err := f.build(t)
	if err != nil {
		return nil, false, err
	}
	f.origin[m] = t
	return m, false, nil
}

func (f *Factory) build(t *template) (*entity.Model, error) {
	m := &entity.Model{Name: t.spec.Name, Services: f.services}
	allocate(m, t.spec.Components)
	reset(m, t)
	if m.Control != nil && t.spec.Components.Control.Device == DevicePlayer {
		m.Control.Device = f.device
	}
	if err := bind(f.world, m); err != nil {
		return nil, err
	}

	if err := f.wire(m, t); err != nil {
		ecs.DestroyEntity(f.world, m.Entity)
		return nil, fmt.Errorf("spawn: %s: %w", t.spec.Name, err)
	}
	return m, nil
}

// wire builds the state machine and the features of a fresh model.
func (f *Factory) wire(m *entity.Model, t *template) error {
	if len(t.states) > 0 {
		states, err := state.Build(m, t.states)
		if err != nil {
			return err
		}
		h := fsm.NewHandler(m.Name)
		if err := h.Register(states...); err != nil {
			return err
		}
		for _, st := range t.scripts {
			if err := h.AddTransition(st.from, st.to, st.guard.Bind(m.Snapshot)); err != nil {
				return err
			}
		}
		if err := h.Validate(); err != nil {
			return err
		}
		m.States = h
	}

	for _, fe := range t.features {
		ft, err := feature.Build(fe.id, fe.node)
		if err != nil {
			return err
		}
		if err := m.AddFeature(fe.id, ft); err != nil {
			return err
		}
	}
	return m.Prepare()
}

// reap runs for every destroyed entity while its components are attached.
func (f *Factory) reap(e ecs.Entity) {
	m, ok := entity.ModelOf(f.world, e)
	if !ok {
		return
	}
	m.NotifyDestroyed()
	m.ClearListeners()
	f.world.Events().Push(ecs.Event{Type: ecs.EventReaped, Entity: e, Name: m.Name})

	t, ok := f.origin[m]
	if !ok {
		return
	}
	if f.templates[m.Name] != t {
		delete(f.origin, m)
		return
	}
	f.pools[m.Name] = append(f.pools[m.Name], m)

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Entity(m.Name, uint64(e)).Debug("reaped")
	}
}
