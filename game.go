package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
	"github.com/milk9111/tilephysics/sim"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	moveForce   = 900.0
	jumpImpulse = -260.0
)

// Game steps a 2D level at the ebiten tick rate and draws it.
type Game struct {
	levelName string
	scale     float64
	debug     bool
	paused    bool

	runner  *sim.Runner
	level   *levels.Level
	terrain *terrainSpace
	player  ecs.Entity
	input   Input
	watcher *prefabs.Watcher
	logger  *zap.Logger

	landings int
}

func NewGame(levelName string, scale float64, debug bool, logger *zap.Logger) (*Game, error) {
	g := &Game{levelName: levelName, scale: scale, debug: debug, logger: logger}
	if err := g.load(); err != nil {
		return nil, err
	}

	w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
	if err != nil {
		// hot reload is optional; the embedded prefabs still work
		logger.Warn("prefab watcher disabled", zap.Error(err))
	} else {
		g.watcher = w
	}
	return g, nil
}

func (g *Game) load() error {
	lvl, err := levels.LoadLevel(g.levelName)
	if err != nil {
		return err
	}
	r, err := sim.Build(sim.Config{
		Level:              g.levelName,
		SpawnLevelEntities: true,
		TickRate:           ebiten.DefaultTPS,
	}, g.logger)
	if err != nil {
		return err
	}
	r.OnEvent = g.onEvent

	g.level = lvl
	g.runner = r
	g.terrain = newTerrainSpace(lvl.TileMap())
	g.landings = 0

	// the player is driven by the keyboard rather than its controller script
	if e, ok := r.World.FindByName("player"); ok {
		g.player = e
		r.World.Scripts().Remove(e)
	} else if ents := r.World.Bodies2D().Entities(); len(ents) > 0 {
		g.player = ents[0]
		r.World.Scripts().Remove(ents[0])
	}
	return nil
}

func (g *Game) onEvent(ev ecs.ContactEvent) {
	if ev.Kind == ecs.EventLanded {
		g.landings++
	}
	if g.debug {
		g.logger.Debug("contact", zap.Stringer("entity", ev.Entity), zap.String("kind", string(ev.Kind)))
	}
}

func (g *Game) Update() error {
	g.pollReload()
	g.input.Update()

	if g.input.ToggleDebug {
		g.debug = !g.debug
	}
	if g.input.Reset {
		if err := g.load(); err != nil {
			g.logger.Warn("level reload failed", zap.Error(err))
		}
	}
	if g.input.Pause {
		g.paused = !g.paused
	}
	if g.paused && !g.input.Step {
		return nil
	}

	if b, ok := g.runner.World.Body2D(g.player); ok {
		b.ApplyForce(cp.Vector{X: g.input.MoveX * moveForce * b.Mass})
		if g.input.JumpPressed && b.Contact.Y > 0 {
			b.ApplyImpulse(cp.Vector{Y: jumpImpulse * b.Mass})
		}
	}
	g.runner.Step()
	return nil
}

// pollReload applies any pending prefab or script edits without blocking.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(ch)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watcher error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) applyChange(ch prefabs.Change) {
	switch ch.Kind {
	case prefabs.ChangeScript:
		if g.runner.Scripts != nil {
			g.runner.Scripts.Invalidate(ch.Name())
		}
		g.logger.Info("script reloaded", zap.String("script", ch.Name()))
	case prefabs.ChangeSpec:
		spec, err := prefabs.LoadBodySpec(ch.Name())
		if err != nil {
			g.logger.Warn("prefab reload failed", zap.String("prefab", ch.Name()), zap.Error(err))
			return
		}
		n := 0
		g.runner.World.Bodies2D().Each(func(e ecs.Entity, b *physics.Body2D) {
			if name, _ := g.runner.World.Name(e); name == spec.Name && spec.Dimension == 2 {
				spec.Apply2D(b)
				n++
			}
		})
		g.logger.Info("prefab reloaded", zap.String("prefab", ch.Name()), zap.Int("bodies", n))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.terrain.Draw(screen, g.scale)

	g.runner.World.Bodies2D().Each(func(e ecs.Entity, b *physics.Body2D) {
		clr := colornames.Lightgreen
		if e == g.player {
			clr = colornames.Orange
		}
		g.drawBody(screen, b, clr)
	})

	msg := fmt.Sprintf("tick %d  landings %d", g.runner.World.Tick(), g.landings)
	if g.paused {
		msg += "  [paused]"
	}
	if g.debug {
		if b, ok := g.runner.World.Body2D(g.player); ok {
			msg += fmt.Sprintf("\npos %.2f,%.2f  vel %.2f,%.2f  contact %v,%v  regions %d",
				b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y, b.Contact.X, b.Contact.Y, g.terrain.regions)
		}
		msg += fmt.Sprintf("\nfps %.0f", ebiten.ActualFPS())
	}
	ebitenutil.DebugPrint(screen, msg)
}

// drawBody outlines a body and marks the sides it was blocked on this tick.
func (g *Game) drawBody(screen *ebiten.Image, b *physics.Body2D, clr color.RGBA) {
	s := g.scale
	r := b.WorldBounds()
	x, y := float32(r.Left()*s), float32(r.Top()*s)
	w, h := float32(r.Width*s), float32(r.Height*s)
	vector.StrokeRect(screen, x, y, w, h, 1, clr, false)

	const thick = 2
	hit := colornames.Red
	switch {
	case b.Contact.X < 0:
		vector.StrokeLine(screen, x, y, x, y+h, thick, hit, false)
	case b.Contact.X > 0:
		vector.StrokeLine(screen, x+w, y, x+w, y+h, thick, hit, false)
	}
	switch {
	case b.Contact.Y < 0:
		vector.StrokeLine(screen, x, y, x+w, y, thick, hit, false)
	case b.Contact.Y > 0:
		vector.StrokeLine(screen, x, y+h, x+w, y+h, thick, hit, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := float64(g.level.Width) * g.level.TileSize * g.scale
	h := float64(g.level.Height) * g.level.TileSize * g.scale
	return int(w), int(h)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
