package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCuboidContainsAndIntersects(t *testing.T) {
	c := Cuboid{Width: 2, Height: 2, Depth: 2}

	assert.True(t, c.Contains(mgl64.Vec3{2, 2, 2}))
	assert.True(t, c.Contains(mgl64.Vec3{1, 0, 1}))
	assert.False(t, c.Contains(mgl64.Vec3{1, 1, 2.5}))

	assert.True(t, c.Intersects(Cuboid{X: 1, Y: 1, Z: 1, Width: 2, Height: 2, Depth: 2}))
	assert.False(t, c.Intersects(Cuboid{X: 2, Width: 1, Height: 1, Depth: 1}), "touching faces")
	assert.False(t, c.Intersects(Cuboid{Z: -1, Width: 1, Height: 1, Depth: 1}), "touching front")
}

func TestCuboidExtend(t *testing.T) {
	base := Cuboid{X: 1, Y: 1, Z: 1, Width: 1, Height: 1, Depth: 1}
	got := base.Extend(mgl64.Vec3{-0.5, 2, -1})
	assert.Equal(t, Cuboid{X: 0.5, Y: 1, Z: 0, Width: 1.5, Height: 3, Depth: 2}, got)
	assert.Equal(t, base, base.Extend(mgl64.Vec3{}))
}

func TestCuboidOffsetShrink(t *testing.T) {
	c := Cuboid{Width: 4, Height: 4, Depth: 4}.Offset(mgl64.Vec3{1, 2, 3}).Shrink(1)
	assert.Equal(t, Cuboid{X: 2, Y: 3, Z: 4, Width: 2, Height: 2, Depth: 2}, c)
	assert.Equal(t, 4.0, c.Right())
	assert.Equal(t, 5.0, c.Top())
	assert.Equal(t, 6.0, c.Back())
	assert.Equal(t, mgl64.Vec3{3, 4, 5}, c.Center())
}

func TestTileIndexFloorsNegatives(t *testing.T) {
	assert.Equal(t, 0, TileIndex(15.9, 16))
	assert.Equal(t, 1, TileIndex(16, 16))
	assert.Equal(t, -1, TileIndex(-0.001, 16))
	assert.Equal(t, -2, TileIndex(-16.5, 16))
}
