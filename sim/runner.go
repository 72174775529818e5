package sim

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/system"
	"go.uber.org/zap"
)

// Runner advances a world at a fixed timestep.
type Runner struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Scripts   *system.ScriptSystem
	Dt        float64

	// OnEvent, when set, receives every contact event after each step.
	OnEvent func(ecs.ContactEvent)

	logger *zap.Logger
}

// Build loads the configured levels and bodies.
func Build(cfg Config, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	if cfg.Level != "" {
		lvl, err := levels.LoadLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("sim: build: %w", err)
		}
		w.SetTerrain2D(lvl.TileMap())
		if cfg.SpawnLevelEntities {
			if _, err := system.SpawnLevel2D(w, lvl, logger); err != nil {
				return nil, fmt.Errorf("sim: build: %w", err)
			}
		}
	}
	if cfg.Level3D != "" {
		lvl, err := levels.LoadLevel3D(cfg.Level3D)
		if err != nil {
			return nil, fmt.Errorf("sim: build: %w", err)
		}
		w.SetTerrain3D(lvl.TileMap())
		if cfg.SpawnLevelEntities {
			if _, err := system.SpawnLevel3D(w, lvl, logger); err != nil {
				return nil, fmt.Errorf("sim: build: %w", err)
			}
		}
	}
	for i, b := range cfg.Bodies {
		_, err := system.Spawn(w, system.Placement{
			Name:     b.Name,
			Prefab:   b.Prefab,
			Position: b.Position,
			Velocity: b.Velocity,
			Script:   b.Script,
		})
		if err != nil {
			return nil, fmt.Errorf("sim: build body %d: %w", i, err)
		}
	}

	r := &Runner{World: w, Scheduler: ecs.NewScheduler(), Dt: cfg.Timestep, logger: logger}
	if cfg.scriptsEnabled() {
		r.Scripts = system.NewScriptSystem(logger.Named("script"))
		r.Scheduler.Add(r.Scripts)
	}
	r.Scheduler.Add(system.NewPhysicsSystem(cfg.Workers, logger.Named("physics")))
	r.Scheduler.Add(system.NewContactSystem(logger.Named("contact")))

	logger.Info("simulation built",
		zap.Int("bodies2d", w.Bodies2D().Len()),
		zap.Int("bodies3d", w.Bodies3D().Len()),
		zap.Float64("dt", r.Dt),
		zap.Int("workers", cfg.Workers),
	)
	return r, nil
}

// Step advances the simulation by one tick.
func (r *Runner) Step() {
	r.Scheduler.Update(r.World, r.Dt)
	events := r.World.Events().Drain()
	if r.OnEvent == nil {
		return
	}
	for _, ev := range events {
		r.OnEvent(ev)
	}
}

// Run performs n steps, stopping early with ctx's error if it is cancelled between
// ticks.
func (r *Runner) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("simulation interrupted", zap.Uint64("tick", r.World.Tick()), zap.Error(err))
			return err
		}
		r.Step()
	}
	return nil
}

// BodyState is a body's observable state at the end of a tick.
type BodyState struct {
	Entity    string    `json:"entity"`
	Name      string    `json:"name,omitempty"`
	Dimension int       `json:"dimension"`
	Position  []float64 `json:"position"`
	Velocity  []float64 `json:"velocity"`
	Contact   []float64 `json:"contact"`
	Submerged bool      `json:"submerged,omitempty"`
}

// Snapshot returns every body in entity order, 2D bodies first.
func (r *Runner) Snapshot() []BodyState {
	var out []BodyState
	r.World.Bodies2D().Each(func(e ecs.Entity, b *physics.Body2D) {
		name, _ := r.World.Name(e)
		out = append(out, BodyState{
			Entity:    e.String(),
			Name:      name,
			Dimension: 2,
			Position:  []float64{b.Position.X, b.Position.Y},
			Velocity:  []float64{b.Velocity.X, b.Velocity.Y},
			Contact:   []float64{b.Contact.X, b.Contact.Y},
		})
	})
	r.World.Bodies3D().Each(func(e ecs.Entity, b *physics.Body3D) {
		name, _ := r.World.Name(e)
		out = append(out, BodyState{
			Entity:    e.String(),
			Name:      name,
			Dimension: 3,
			Position:  clone(b.Position[:]),
			Velocity:  clone(b.Velocity[:]),
			Contact:   clone(b.Contact[:]),
			Submerged: b.IsSubmerged,
		})
	})
	return out
}

func clone(vs []float64) []float64 {
	return append([]float64(nil), vs...)
}

// Digest hashes the exact bit patterns of every body's state. Two runs of the same
// config produce the same digest.
func (r *Runner) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeFloats := func(vs []float64) {
		for _, v := range vs {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	binary.LittleEndian.PutUint64(buf[:], r.World.Tick())
	_, _ = h.Write(buf[:])
	for _, s := range r.Snapshot() {
		_, _ = h.WriteString(s.Entity)
		writeFloats(s.Position)
		writeFloats(s.Velocity)
		writeFloats(s.Contact)
		if s.Submerged {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
