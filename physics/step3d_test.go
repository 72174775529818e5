package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tilephysics/common"
	"github.com/stretchr/testify/assert"
)

func newCube3D(size float64, pos, vel mgl64.Vec3) *Body3D {
	b := NewBody3D(common.Cuboid{Width: size, Height: size, Depth: size})
	b.Position = pos
	b.Velocity = vel
	return b
}

func assertVec3(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for axis := 0; axis < 3; axis++ {
		assert.InDelta(t, want[axis], got[axis], eps, "axis %d", axis)
	}
}

func TestStep3DKinematics(t *testing.T) {
	b := newCube3D(1, mgl64.Vec3{}, mgl64.Vec3{})
	b.Gravity = mgl64.Vec3{0, -10, 0}
	b.Force = mgl64.Vec3{2, 0, 0}
	b.Impulse = mgl64.Vec3{0, 0, 3}
	b.Friction = mgl64.Vec3{0, 0, 1}

	Step3D(b, 0.5, nil)

	assertVec3(t, mgl64.Vec3{0.5, -2.5, 1.5}, b.Position)
	assertVec3(t, mgl64.Vec3{1, -5, 2}, b.Velocity)
	assert.Equal(t, mgl64.Vec3{}, b.Force)
	assert.Equal(t, mgl64.Vec3{}, b.Impulse)
	assert.False(t, b.IsSubmerged)
}

func TestStep3DSpeedCap(t *testing.T) {
	b := newCube3D(1, mgl64.Vec3{}, mgl64.Vec3{0, 30, 40})
	b.MaxSpeed = 5

	Step3D(b, 0.1, nil)

	assertVec3(t, mgl64.Vec3{0, 3, 4}, b.Velocity)
}

func TestStep3DLandsOnFloor(t *testing.T) {
	floor := newGridTerrain3D().fill([3]int{0, 0, 0}, [3]int{3, 0, 3}, solidBlock)
	b := newCube3D(0.5, mgl64.Vec3{1.2, 1.05, 1.2}, mgl64.Vec3{0, -2, 0})

	Step3D(b, 0.1, floor)

	assert.InDelta(t, 1, b.Position.Y(), eps)
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, b.Contact)
	assert.Zero(t, b.Velocity.Y())
}

func TestStep3DCornerResolvesEachAxisOnce(t *testing.T) {
	terrain := newGridTerrain3D().
		fill([3]int{0, 0, 0}, [3]int{4, 0, 4}, solidBlock).
		fill([3]int{3, 1, 0}, [3]int{3, 3, 4}, solidBlock).
		fill([3]int{0, 1, 3}, [3]int{4, 3, 3}, solidBlock)
	b := newCube3D(0.5, mgl64.Vec3{2.3, 1.05, 2.3}, mgl64.Vec3{5, -2, 5})

	Step3D(b, 0.1, terrain)

	assert.Equal(t, mgl64.Vec3{1, -1, 1}, b.Contact)
	assertVec3(t, mgl64.Vec3{2.5, 1, 2.5}, b.Position)
	assertVec3(t, mgl64.Vec3{}, b.Velocity)
}

func TestStep3DWallFaceCoverage(t *testing.T) {
	cases := []struct {
		name    string
		behind  *gridCell3D
		blocked bool
	}{
		{"open_behind", nil, true},
		{"ramp_not_covering_face", &gridCell3D{kind: TileSolid, shape: ShapeRamp2}, true},
		{"ramp_covering_face", &gridCell3D{kind: TileSolid, shape: ShapeRamp3}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			terrain := newGridTerrain3D().set(2, 1, 1, solidBlock)
			if c.behind != nil {
				terrain.set(1, 1, 1, *c.behind)
			}
			b := newCube3D(0.5, mgl64.Vec3{1.3, 1.2, 1.2}, mgl64.Vec3{5, 0, 0})

			Step3D(b, 0.1, terrain)

			if c.blocked {
				assert.Equal(t, 1.0, b.Contact.X())
				assert.InDelta(t, 1.5, b.Position.X(), eps)
			} else {
				assert.Zero(t, b.Contact.X())
				assert.InDelta(t, 1.8, b.Position.X(), eps)
			}
		})
	}
}

func TestStep3DRampSurfaceFollowsSlope(t *testing.T) {
	terrain := newGridTerrain3D().set(0, 0, 0, gridCell3D{kind: TileSolid, shape: ShapeRamp0})
	bounds := common.Cuboid{Width: 0.25, Height: 1.5, Depth: 0.25}

	var heights []float64
	for _, z := range []float64{0.1, 0.4, 0.7} {
		surface := 1 - (z + terrain.threshold)
		b := NewBody3D(bounds)
		b.Position = mgl64.Vec3{0.3, surface + 0.05, z}
		b.Velocity = mgl64.Vec3{0, -1, 0}

		Step3D(b, 0.1, terrain)

		assert.InDelta(t, surface, b.Position.Y(), eps, "z=%v", z)
		assert.Equal(t, -1.0, b.Contact.Y(), "z=%v", z)
		heights = append(heights, b.Position.Y())
	}
	assert.InDelta(t, heights[0]-heights[1], heights[1]-heights[2], eps)
}

func TestStep3DRampAboveSurfaceFalls(t *testing.T) {
	terrain := newGridTerrain3D().set(0, 0, 0, gridCell3D{kind: TileSolid, shape: ShapeRamp0})
	b := NewBody3D(common.Cuboid{Width: 0.25, Height: 1.5, Depth: 0.25})
	b.Position = mgl64.Vec3{0.3, 0.3 + 0.5, 0.7}
	b.Velocity = mgl64.Vec3{0, -1, 0}

	Step3D(b, 0.1, terrain)

	assert.Zero(t, b.Contact.Y())
	assert.InDelta(t, 0.7, b.Position.Y(), eps)
}

func TestStep3DPlatformsAndGrates(t *testing.T) {
	cases := []struct {
		name    string
		cell    gridCell3D
		setup   func(*Body3D)
		blocked bool
	}{
		{"platform_from_above", platform3D, nil, true},
		{"platform_ignored", platform3D, func(b *Body3D) { b.IgnoresPlatforms = true }, false},
		{"grate", grate3D, nil, true},
		{"grate_ignored", grate3D, func(b *Body3D) { b.IgnoresGrates = true }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			terrain := newGridTerrain3D().set(1, 0, 1, c.cell)
			b := newCube3D(0.5, mgl64.Vec3{1.2, 1.05, 1.2}, mgl64.Vec3{0, -2, 0})
			if c.setup != nil {
				c.setup(b)
			}

			Step3D(b, 0.1, terrain)

			if c.blocked {
				assert.InDelta(t, 1, b.Position.Y(), eps)
				assert.Equal(t, -1.0, b.Contact.Y())
			} else {
				assert.InDelta(t, 0.85, b.Position.Y(), eps)
				assert.Zero(t, b.Contact.Y())
			}
		})
	}
}

func TestStep3DPlatformDoesNotBlockJump(t *testing.T) {
	terrain := newGridTerrain3D().set(1, 2, 1, platform3D)
	b := newCube3D(0.5, mgl64.Vec3{1.2, 1.4, 1.2}, mgl64.Vec3{0, 2, 0})

	Step3D(b, 0.1, terrain)

	assert.Zero(t, b.Contact.Y())
	assert.InDelta(t, 1.6, b.Position.Y(), eps)
}

func TestStep3DSubmerged(t *testing.T) {
	water := gridCell3D{liquid: true}
	newPool := func() liquidTerrain3D {
		return liquidTerrain3D{newGridTerrain3D().fill([3]int{0, 0, 0}, [3]int{3, 3, 3}, water)}
	}

	t.Run("gravity_suspended_after_entering", func(t *testing.T) {
		b := newCube3D(0.5, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{})
		b.Gravity = mgl64.Vec3{0, -10, 0}
		pool := newPool()

		Step3D(b, 0.1, pool)
		assert.True(t, b.IsSubmerged)
		assert.InDelta(t, -1, b.Velocity.Y(), eps)

		Step3D(b, 0.1, pool)
		assert.True(t, b.IsSubmerged)
		assert.InDelta(t, -1, b.Velocity.Y(), eps)
		assert.InDelta(t, 0.8, b.Position.Y(), eps)
	})

	t.Run("float_force_replaces_gravity", func(t *testing.T) {
		float := 3.0
		b := newCube3D(0.5, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{})
		b.Gravity = mgl64.Vec3{0, -10, 0}
		b.FloatForce = &float
		b.IsSubmerged = true

		Step3D(b, 0.1, newPool())

		assert.InDelta(t, 0.3, b.Velocity.Y(), eps)
		assert.True(t, b.IsSubmerged)
	})

	t.Run("plain_terrain_never_submerges", func(t *testing.T) {
		b := newCube3D(0.5, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{})
		b.IsSubmerged = true

		Step3D(b, 0.1, newPool().gridTerrain3D)

		assert.False(t, b.IsSubmerged)
	})
}

func TestStep3DZeroDtIsIdempotent(t *testing.T) {
	floor := newGridTerrain3D().fill([3]int{0, 0, 0}, [3]int{3, 0, 3}, solidBlock)
	b := newCube3D(0.5, mgl64.Vec3{1.2, 1.5, 1.2}, mgl64.Vec3{1, -1, 0.5})
	b.Gravity = mgl64.Vec3{0, -10, 0}
	b.Friction = mgl64.Vec3{2, 2, 2}

	Step3D(b, 0, floor)
	first := *b
	Step3D(b, 0, floor)

	assert.Equal(t, first, *b)
	assert.Equal(t, mgl64.Vec3{1.2, 1.5, 1.2}, b.Position)
}
