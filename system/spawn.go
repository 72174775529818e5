package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/prefabs"
	"go.uber.org/zap"
)

// BodyEntityType marks level entities that spawn a physics body.
const BodyEntityType = "body"

// Placement is a body to spawn from a prefab. Position has two components for 2D
// prefabs and three for 3D ones.
type Placement struct {
	Name     string
	Prefab   string
	Position []float64
	Velocity []float64
	// Script overrides the prefab's controller script when set.
	Script string
}

// Spawn creates an entity with the prefab's body at the placement's position.
func Spawn(w *ecs.World, p Placement) (ecs.Entity, error) {
	spec, err := prefabs.LoadBodySpec(p.Prefab)
	if err != nil {
		return 0, err
	}
	if len(p.Position) != spec.Dimension {
		return 0, fmt.Errorf("system: spawn %s: position needs %d values, got %d", p.Prefab, spec.Dimension, len(p.Position))
	}
	if len(p.Velocity) != 0 && len(p.Velocity) != spec.Dimension {
		return 0, fmt.Errorf("system: spawn %s: velocity needs %d values, got %d", p.Prefab, spec.Dimension, len(p.Velocity))
	}
	vel := make([]float64, spec.Dimension)
	copy(vel, p.Velocity)

	e := w.CreateEntity()
	if spec.Dimension == 2 {
		b := spec.Build2D()
		b.Position = cp.Vector{X: p.Position[0], Y: p.Position[1]}
		b.Velocity = cp.Vector{X: vel[0], Y: vel[1]}
		err = w.SetBody2D(e, b)
	} else {
		b := spec.Build3D()
		b.Position = mgl64.Vec3{p.Position[0], p.Position[1], p.Position[2]}
		b.Velocity = mgl64.Vec3{vel[0], vel[1], vel[2]}
		err = w.SetBody3D(e, b)
	}
	if err != nil {
		return 0, err
	}

	name := p.Name
	if name == "" {
		name = spec.Name
	}
	if name != "" {
		_ = w.SetName(e, name)
	}
	script := p.Script
	if script == "" {
		script = spec.Script
	}
	if script != "" {
		_ = w.SetScript(e, script)
	}
	return e, nil
}

// SpawnLevel2D spawns every body entity placed in a 2D level. Entities of other types
// are skipped.
func SpawnLevel2D(w *ecs.World, lvl *levels.Level, logger *zap.Logger) ([]ecs.Entity, error) {
	var out []ecs.Entity
	for i, ent := range lvl.Entities {
		if ent.Type != BodyEntityType {
			continue
		}
		pos := lvl.TileToWorld(ent.X, ent.Y)
		e, err := Spawn(w, Placement{
			Name:     ent.Prop("name"),
			Prefab:   ent.Prop("prefab"),
			Position: []float64{pos.X, pos.Y},
			Script:   ent.Prop("script"),
		})
		if err != nil {
			return out, fmt.Errorf("system: level entity %d: %w", i, err)
		}
		logSpawn(logger, e, ent.Prop("prefab"))
		out = append(out, e)
	}
	return out, nil
}

func SpawnLevel3D(w *ecs.World, lvl *levels.Level3D, logger *zap.Logger) ([]ecs.Entity, error) {
	var out []ecs.Entity
	for i, ent := range lvl.Entities {
		if ent.Type != BodyEntityType {
			continue
		}
		e, err := Spawn(w, Placement{
			Name:     ent.Prop("name"),
			Prefab:   ent.Prop("prefab"),
			Position: ent.Position[:],
			Script:   ent.Prop("script"),
		})
		if err != nil {
			return out, fmt.Errorf("system: level entity %d: %w", i, err)
		}
		logSpawn(logger, e, ent.Prop("prefab"))
		out = append(out, e)
	}
	return out, nil
}

func logSpawn(logger *zap.Logger, e ecs.Entity, prefab string) {
	if logger == nil {
		return
	}
	logger.Debug("spawned body", zap.Stringer("entity", e), zap.String("prefab", prefab))
}
