package physics

import "github.com/go-gl/mathgl/mgl64"

type gridTerrain2D struct {
	size      float64
	threshold float64
	cells     map[[2]int]TileCollisionType
}

func newGridTerrain2D(size float64) *gridTerrain2D {
	return &gridTerrain2D{size: size, threshold: 0.001, cells: map[[2]int]TileCollisionType{}}
}

// fill sets every cell in the inclusive range [x0,x1]x[y0,y1].
func (g *gridTerrain2D) fill(x0, y0, x1, y1 int, t TileCollisionType) *gridTerrain2D {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			g.cells[[2]int{x, y}] = t
		}
	}
	return g
}

func (g *gridTerrain2D) TileSize() float64      { return g.size }
func (g *gridTerrain2D) EdgeThreshold() float64 { return g.threshold }
func (g *gridTerrain2D) IsSolid(x, y int, opts SolidityOptions) bool {
	return g.cells[[2]int{x, y}].IsSolid(opts)
}

type gridCell3D struct {
	kind   TileCollisionType
	shape  BlockShape
	liquid bool
}

type gridTerrain3D struct {
	size      mgl64.Vec3
	threshold float64
	cells     map[[3]int]gridCell3D
}

func newGridTerrain3D() *gridTerrain3D {
	return &gridTerrain3D{size: mgl64.Vec3{1, 1, 1}, threshold: 0.001, cells: map[[3]int]gridCell3D{}}
}

func (g *gridTerrain3D) set(x, y, z int, c gridCell3D) *gridTerrain3D {
	g.cells[[3]int{x, y, z}] = c
	return g
}

func (g *gridTerrain3D) fill(lo, hi [3]int, c gridCell3D) *gridTerrain3D {
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				g.set(x, y, z, c)
			}
		}
	}
	return g
}

func (g *gridTerrain3D) TileSize() mgl64.Vec3   { return g.size }
func (g *gridTerrain3D) EdgeThreshold() float64 { return g.threshold }
func (g *gridTerrain3D) IsSolid(x, y, z int, opts SolidityOptions) bool {
	return g.cells[[3]int{x, y, z}].kind.IsSolid(opts)
}
func (g *gridTerrain3D) BlockShape(x, y, z int) BlockShape {
	return g.cells[[3]int{x, y, z}].shape
}

// liquidTerrain3D adds liquid queries on top of gridTerrain3D.
type liquidTerrain3D struct {
	*gridTerrain3D
}

func (l liquidTerrain3D) IsLiquid(x, y, z int) bool {
	return l.cells[[3]int{x, y, z}].liquid
}

var (
	solidBlock = gridCell3D{kind: TileSolid, shape: ShapeBlock}
	platform3D = gridCell3D{kind: TilePlatform, shape: ShapeBlock}
	grate3D    = gridCell3D{kind: TileGrate, shape: ShapeBlock}
)
