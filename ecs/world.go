package ecs

import (
	"log/slog"

	"github.com/milk9111/thirdperson/clock"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/physics"
)

// World owns entities, component stores, the event queue and the shared
// simulation resources systems read from.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]anyStore
	events   EventQueue

	physics    *physics.World
	clock      *clock.Sim
	frameDelta float64

	log *slog.Logger
}

func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]anyStore),
		clock:  clock.NewSim(),
		log:    slog.Default().With("subsystem", "ecs"),
	}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e. It returns false when e was
// not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	w.events.Push(Event{Type: EventEntityDestroyed, Entity: e})
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities lists live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gens {
		if e, ok := w.entities.current(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) SetPhysics(pw *physics.World) {
	if w == nil {
		return
	}
	w.physics = pw
}

func (w *World) Physics() *physics.World {
	if w == nil {
		return nil
	}
	return w.physics
}

func (w *World) SetClock(c *clock.Sim) {
	if w == nil || c == nil {
		return
	}
	w.clock = c
}

// Clock is the simulation clock advanced by the fixed step.
func (w *World) Clock() *clock.Sim {
	if w == nil {
		return nil
	}
	return w.clock
}

// SetFrameDelta records the variable frame time for per-frame systems.
func (w *World) SetFrameDelta(dt float64) {
	if w == nil {
		return
	}
	w.frameDelta = dt
}

func (w *World) FrameDelta() float64 {
	if w == nil {
		return 0
	}
	return w.frameDelta
}

func (w *World) Logger() *slog.Logger {
	if w == nil || w.log == nil {
		return slog.Default()
	}
	return w.log
}

func (w *World) SetLogger(l *slog.Logger) {
	if w == nil || l == nil {
		return
	}
	w.log = l.With("subsystem", "ecs")
}
