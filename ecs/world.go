package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilephysics/physics"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// World owns entities, their bodies and the terrain they move through.
type World struct {
	entities entityStore
	events   EventQueue
	tick     uint64

	bodies2D *SparseSet[*physics.Body2D]
	bodies3D *SparseSet[*physics.Body3D]
	names    *SparseSet[string]
	scripts  *SparseSet[string]

	terrain2D physics.Terrain2D
	terrain3D physics.Terrain3D
}

func NewWorld() *World {
	return &World{
		bodies2D: NewSparseSet[*physics.Body2D](),
		bodies3D: NewSparseSet[*physics.Body3D](),
		names:    NewSparseSet[string](),
		scripts:  NewSparseSet[string](),
	}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and everything attached to it. It reports whether e was alive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	w.bodies2D.Remove(e)
	w.bodies3D.Remove(e)
	w.names.Remove(e)
	w.scripts.Remove(e)
	return true
}

func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity in creation-slot order.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

func (w *World) requireAlive(e Entity) error {
	if !w.IsAlive(e) {
		return fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
	}
	return nil
}

func (w *World) SetBody2D(e Entity, b *physics.Body2D) error {
	if err := w.requireAlive(e); err != nil {
		return err
	}
	w.bodies2D.Set(e, b)
	return nil
}

func (w *World) SetBody3D(e Entity, b *physics.Body3D) error {
	if err := w.requireAlive(e); err != nil {
		return err
	}
	w.bodies3D.Set(e, b)
	return nil
}

func (w *World) SetName(e Entity, name string) error {
	if err := w.requireAlive(e); err != nil {
		return err
	}
	w.names.Set(e, name)
	return nil
}

// SetScript attaches a controller script path to e.
func (w *World) SetScript(e Entity, path string) error {
	if err := w.requireAlive(e); err != nil {
		return err
	}
	w.scripts.Set(e, path)
	return nil
}

func (w *World) Body2D(e Entity) (*physics.Body2D, bool) { return w.bodies2D.Get(e) }
func (w *World) Body3D(e Entity) (*physics.Body3D, bool) { return w.bodies3D.Get(e) }
func (w *World) Name(e Entity) (string, bool)            { return w.names.Get(e) }
func (w *World) Script(e Entity) (string, bool)          { return w.scripts.Get(e) }

func (w *World) Bodies2D() *SparseSet[*physics.Body2D] { return w.bodies2D }
func (w *World) Bodies3D() *SparseSet[*physics.Body3D] { return w.bodies3D }
func (w *World) Scripts() *SparseSet[string]           { return w.scripts }

// FindByName returns the first live entity with the given name.
func (w *World) FindByName(name string) (Entity, bool) {
	for _, e := range w.names.Entities() {
		if n, _ := w.names.Get(e); n == name {
			return e, true
		}
	}
	return 0, false
}

func (w *World) SetTerrain2D(t physics.Terrain2D) { w.terrain2D = t }
func (w *World) SetTerrain3D(t physics.Terrain3D) { w.terrain3D = t }
func (w *World) Terrain2D() physics.Terrain2D     { return w.terrain2D }
func (w *World) Terrain3D() physics.Terrain3D     { return w.terrain3D }

// Events holds the contact events of the most recent tick.
func (w *World) Events() *EventQueue {
	return &w.events
}

// Tick is the number of completed scheduler updates.
func (w *World) Tick() uint64 {
	return w.tick
}
