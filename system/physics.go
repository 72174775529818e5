package system

import (
	"fmt"

	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PhysicsSystem steps every body in the world against the world's terrain.
type PhysicsSystem struct {
	// Workers above 1 step bodies concurrently. Terrain must not change during Update.
	Workers int
	Logger  *zap.Logger
}

func NewPhysicsSystem(workers int, logger *zap.Logger) *PhysicsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhysicsSystem{Workers: workers, Logger: logger}
}

// panicError carries a panic out of a worker goroutine so it can be re-raised on the
// caller's goroutine.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("system: physics worker panic: %v", p.value)
}

func (s *PhysicsSystem) Update(w *ecs.World, dt float64) {
	t2 := w.Terrain2D()
	t3 := w.Terrain3D()
	bodies2D := w.Bodies2D().Entities()
	bodies3D := w.Bodies3D().Entities()

	if s.Workers <= 1 {
		for _, e := range bodies2D {
			b, _ := w.Body2D(e)
			physics.Step2D(b, dt, t2)
		}
		for _, e := range bodies3D {
			b, _ := w.Body3D(e)
			physics.Step3D(b, dt, t3)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(s.Workers)
	for _, e := range bodies2D {
		b, _ := w.Body2D(e)
		g.Go(guard(func() { physics.Step2D(b, dt, t2) }))
	}
	for _, e := range bodies3D {
		b, _ := w.Body3D(e)
		g.Go(guard(func() { physics.Step3D(b, dt, t3) }))
	}
	if err := g.Wait(); err != nil {
		s.Logger.Error("physics step failed", zap.Uint64("tick", w.Tick()), zap.Error(err))
		if p, ok := err.(panicError); ok {
			panic(p.value)
		}
	}
}

func guard(fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = panicError{value: r}
			}
		}()
		fn()
		return nil
	}
}
