// Package tilemap provides dense in-memory grids that satisfy the physics terrain
// interfaces.
package tilemap

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tilephysics/physics"
)

// DefaultEdgeThreshold insets body bounds by a hair so resting contact is not treated
// as penetration.
const DefaultEdgeThreshold = 0.001

// TileMap is a row-major 2D grid of square tiles.
type TileMap struct {
	Width, Height int
	Size          float64
	Threshold     float64
	Tiles         []physics.TileCollisionType
}

func New(width, height int, tileSize float64) *TileMap {
	return &TileMap{
		Width:     width,
		Height:    height,
		Size:      tileSize,
		Threshold: DefaultEdgeThreshold,
		Tiles:     make([]physics.TileCollisionType, width*height),
	}
}

func (m *TileMap) IsWithinBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns the tile at (x, y), or TileNone outside the map.
func (m *TileMap) At(x, y int) physics.TileCollisionType {
	if !m.IsWithinBounds(x, y) {
		return physics.TileNone
	}
	return m.Tiles[y*m.Width+x]
}

// Set stores t at (x, y). Out of range writes are ignored.
func (m *TileMap) Set(x, y int, t physics.TileCollisionType) {
	if m.IsWithinBounds(x, y) {
		m.Tiles[y*m.Width+x] = t
	}
}

func (m *TileMap) TileSize() float64      { return m.Size }
func (m *TileMap) EdgeThreshold() float64 { return m.Threshold }

func (m *TileMap) IsSolid(x, y int, opts physics.SolidityOptions) bool {
	return m.At(x, y).IsSolid(opts)
}

// Cell is one voxel of a TileMap3D.
type Cell struct {
	Type   physics.TileCollisionType
	Shape  physics.BlockShape
	Liquid bool
}

// TileMap3D is a dense 3D grid indexed x fastest, then z, then y.
type TileMap3D struct {
	Width, Height, Depth int
	Size                 mgl64.Vec3
	Threshold            float64
	Cells                []Cell
}

func New3D(width, height, depth int, tileSize mgl64.Vec3) *TileMap3D {
	return &TileMap3D{
		Width:     width,
		Height:    height,
		Depth:     depth,
		Size:      tileSize,
		Threshold: DefaultEdgeThreshold,
		Cells:     make([]Cell, width*height*depth),
	}
}

func (m *TileMap3D) IsWithinBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < m.Width && y < m.Height && z < m.Depth
}

func (m *TileMap3D) index(x, y, z int) int {
	return (y*m.Depth+z)*m.Width + x
}

func (m *TileMap3D) At(x, y, z int) Cell {
	if !m.IsWithinBounds(x, y, z) {
		return Cell{}
	}
	return m.Cells[m.index(x, y, z)]
}

func (m *TileMap3D) Set(x, y, z int, c Cell) {
	if m.IsWithinBounds(x, y, z) {
		m.Cells[m.index(x, y, z)] = c
	}
}

func (m *TileMap3D) TileSize() mgl64.Vec3   { return m.Size }
func (m *TileMap3D) EdgeThreshold() float64 { return m.Threshold }

func (m *TileMap3D) IsSolid(x, y, z int, opts physics.SolidityOptions) bool {
	return m.At(x, y, z).Type.IsSolid(opts)
}

// BlockShape reports ShapeBlock for every non-solid cell.
func (m *TileMap3D) BlockShape(x, y, z int) physics.BlockShape {
	c := m.At(x, y, z)
	if c.Type == physics.TileNone {
		return physics.ShapeBlock
	}
	return c.Shape
}

func (m *TileMap3D) IsLiquid(x, y, z int) bool {
	return m.At(x, y, z).Liquid
}

var (
	_ physics.Terrain2D       = (*TileMap)(nil)
	_ physics.LiquidTerrain3D = (*TileMap3D)(nil)
)
