package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/tilemap"
	"golang.org/x/image/colornames"
)

// terrainSpace mirrors a tile map as merged static boxes so cp.DrawSpace can render it.
// Platform and grate regions are sensors so the drawer can tell them apart.
type terrainSpace struct {
	space   *cp.Space
	regions int
}

func newTerrainSpace(m *tilemap.TileMap) *terrainSpace {
	space := cp.NewSpace()
	regions := tilemap.Merge(m)
	for _, r := range regions {
		shape := cp.NewBox2(space.StaticBody, r.BB(m.TileSize()), 0)
		shape.SetSensor(r.Type != physics.TileSolid)
		shape.UserData = r.Type
		space.AddShape(shape)
	}
	return &terrainSpace{space: space, regions: len(regions)}
}

func (t *terrainSpace) Draw(screen *ebiten.Image, scale float64) {
	if t == nil || t.space == nil || screen == nil {
		return
	}
	cp.DrawSpace(t.space, &spaceDrawer{screen: screen, scale: scale})
}

type spaceDrawer struct {
	screen *ebiten.Image
	scale  float64
}

func (d *spaceDrawer) line(a, b cp.Vector, c color.Color) {
	s := d.scale
	vector.StrokeLine(d.screen, float32(a.X*s), float32(a.Y*s), float32(b.X*s), float32(b.Y*s), 1, c, false)
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	// boxes come out axis aligned, so fill with the bounding rect
	bb := cp.NewBBForExtents(verts[0], 0, 0)
	for _, v := range verts[:count] {
		bb = bb.Expand(v)
	}
	s := d.scale
	fill.A = 0.4
	fc := fcolorToRGBA(premultiply(fill))
	vector.FillRect(d.screen, float32(bb.L*s), float32(bb.B*s), float32((bb.R-bb.L)*s), float32((bb.T-bb.B)*s), fc, false)

	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	l := size / 2
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return toFColor(colornames.Lightsteelblue)
}

func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return toFColor(colornames.White)
	}
	switch shape.UserData {
	case physics.TilePlatform:
		return toFColor(colornames.Gold)
	case physics.TileGrate:
		return toFColor(colornames.Mediumpurple)
	}
	return toFColor(colornames.Cornflowerblue)
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return toFColor(colornames.Lightgray)
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return toFColor(colornames.Red)
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func toFColor(c color.RGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
}

func premultiply(c cp.FColor) cp.FColor {
	return cp.FColor{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
