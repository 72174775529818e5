package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxWorld(t *testing.T, bodies int) *ecs.World {
	t.Helper()
	m := tilemap.New(32, 16, 16)
	for x := 0; x < m.Width; x++ {
		m.Set(x, m.Height-1, physics.TileSolid)
	}
	for y := 0; y < m.Height; y++ {
		m.Set(0, y, physics.TileSolid)
		m.Set(m.Width-1, y, physics.TileSolid)
	}
	w := ecs.NewWorld()
	w.SetTerrain2D(m)
	for i := 0; i < bodies; i++ {
		b := physics.NewBody2D(common.Rect{Width: 10, Height: 10})
		b.Position = cp.Vector{X: 20 + float64(i*23%400), Y: 16 + float64(i%7)*9}
		b.Velocity = cp.Vector{X: float64(i%5-2) * 90, Y: float64(i%3) * -40}
		b.Gravity = cp.Vector{Y: 900}
		b.BounceFactor = 0.3
		b.Friction = 0.5
		e := w.CreateEntity()
		require.NoError(t, w.SetBody2D(e, b))
	}
	return w
}

func TestPhysicsSystemWorkersMatchSerial(t *testing.T) {
	serial := boxWorld(t, 40)
	parallel := boxWorld(t, 40)
	s1 := NewPhysicsSystem(1, nil)
	s4 := NewPhysicsSystem(4, nil)

	for i := 0; i < 120; i++ {
		s1.Update(serial, 1.0/60)
		s4.Update(parallel, 1.0/60)
	}

	for _, e := range serial.Bodies2D().Entities() {
		a, _ := serial.Body2D(e)
		b, ok := parallel.Body2D(e)
		require.True(t, ok)
		assert.Equal(t, *a, *b, "entity %s", e)
	}
}

func TestPhysicsSystemBodiesSettleOnFloor(t *testing.T) {
	w := boxWorld(t, 10)
	w.Bodies2D().Each(func(_ ecs.Entity, b *physics.Body2D) { b.BounceFactor = 0 })
	s := NewPhysicsSystem(2, nil)
	for i := 0; i < 600; i++ {
		s.Update(w, 1.0/60)
	}
	w.Bodies2D().Each(func(e ecs.Entity, b *physics.Body2D) {
		assert.InDelta(t, 15*16-10, b.Position.Y, 1e-6, "entity %s", e)
		assert.Equal(t, 1.0, b.Contact.Y)
	})
}

type panicTerrain struct{}

func (panicTerrain) TileSize() float64      { return 1 }
func (panicTerrain) EdgeThreshold() float64 { return 0 }
func (panicTerrain) IsSolid(x, y int, opts physics.SolidityOptions) bool {
	panic("terrain exploded")
}

func TestPhysicsSystemPropagatesTerrainPanics(t *testing.T) {
	for _, workers := range []int{1, 3} {
		w := ecs.NewWorld()
		w.SetTerrain2D(panicTerrain{})
		b := physics.NewBody2D(common.Rect{Width: 1, Height: 1})
		b.Velocity = cp.Vector{X: 5}
		require.NoError(t, w.SetBody2D(w.CreateEntity(), b))

		assert.PanicsWithValue(t, "terrain exploded", func() {
			NewPhysicsSystem(workers, nil).Update(w, 1)
		}, "workers=%d", workers)
	}
}
