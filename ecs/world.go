package ecs

import (
	"errors"

	"github.com/milk9111/lionheart/ecs/component"
)

var ErrUnknownComponent = errors.New("ecs: component not registered")

// World owns entities, component tables, system order and the end of frame
// destruction queue.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue

	pending []Entity
	queued  map[Entity]struct{}
	reapers []func(Entity)

	frame uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		queued:    make(map[Entity]struct{}),
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs all systems once, then destroys the entities queued during the
// frame.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.Reap()
	w.frame++
}

// Frame returns the number of completed updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// OnReap registers fn to run for each queued entity right before it is
// destroyed. Components are still attached when fn runs.
func (w *World) OnReap(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.reapers = append(w.reapers, fn)
}

// Reap destroys queued entities. Entities queued by reap hooks are destroyed
// in the same call.
func (w *World) Reap() []Entity {
	if w == nil {
		return nil
	}
	var reaped []Entity
	for len(w.pending) > 0 {
		batch := w.pending
		w.pending = nil
		for _, e := range batch {
			if !w.entities.isAlive(e) {
				delete(w.queued, e)
				continue
			}
			for _, fn := range w.reapers {
				fn(e)
			}
			delete(w.queued, e)
			DestroyEntity(w, e)
			reaped = append(reaped, e)
		}
	}
	return reaped
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all its components immediately. Gameplay code
// uses QueueDestroy instead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	delete(w.queued, e)
	return w.entities.destroy(e)
}

// QueueDestroy schedules e for destruction at the end of the frame. The
// entity stays alive and visible until then. Queuing twice is a no-op.
func QueueDestroy(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	if _, ok := w.queued[e]; ok {
		return false
	}
	w.queued[e] = struct{}{}
	w.pending = append(w.pending, e)
	return true
}

// IsQueued reports whether e waits for destruction.
func IsQueued(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	_, ok := w.queued[e]
	return ok
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every alive entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}
