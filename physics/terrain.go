package physics

import "github.com/go-gl/mathgl/mgl64"

// Terrain2D answers solidity queries for a dense grid of square tiles.
// Cells outside the map must report not solid.
type Terrain2D interface {
	TileSize() float64
	// EdgeThreshold insets body bounds so resting contact is not seen as penetration.
	EdgeThreshold() float64
	IsSolid(x, y int, opts SolidityOptions) bool
}

// Terrain3D answers solidity and shape queries for a grid of box-shaped tiles.
type Terrain3D interface {
	TileSize() mgl64.Vec3
	EdgeThreshold() float64
	IsSolid(x, y, z int, opts SolidityOptions) bool
	BlockShape(x, y, z int) BlockShape
}

// LiquidTerrain3D is implemented by terrains with liquid cells. Bodies overlapping a
// liquid cell after collision resolution are flagged as submerged.
type LiquidTerrain3D interface {
	Terrain3D
	IsLiquid(x, y, z int) bool
}
