package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tilephysics/common"
)

// Direction3D is a set of axis-aligned face directions.
type Direction3D uint8

const (
	DirRight Direction3D = 1 << iota
	DirUp
	DirForwards
	DirLeft
	DirDown
	DirBackwards

	DirNone Direction3D = 0
	DirAll              = DirRight | DirUp | DirForwards | DirLeft | DirDown | DirBackwards
)

// axisDirection returns the face direction pointing along axis with the given sign.
func axisDirection(axis, sign int) Direction3D {
	if sign > 0 {
		return Direction3D(1) << axis
	}
	return Direction3D(1) << (axis + 3)
}

func (d Direction3D) Has(flags Direction3D) bool {
	return d&flags == flags
}

// Vector sums the unit vectors of every direction in the set.
func (d Direction3D) Vector() mgl64.Vec3 {
	var v mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		if d.Has(axisDirection(axis, 1)) {
			v[axis]++
		}
		if d.Has(axisDirection(axis, -1)) {
			v[axis]--
		}
	}
	return v
}

// BlockShape is the geometry occupying a solid 3D cell.
type BlockShape uint8

const (
	ShapeBlock BlockShape = iota
	ShapeRamp0
	ShapeRamp1
	ShapeRamp2
	ShapeRamp3
	ShapeRamp4
	ShapeRamp5
	ShapeRamp6
	ShapeRamp7
	ShapeRamp8
	ShapeRamp9
	ShapeRamp10
	ShapeRamp11

	shapeCount
)

var coveredDirections = [shapeCount]Direction3D{
	ShapeBlock:  DirAll,
	ShapeRamp0:  DirDown | DirForwards,
	ShapeRamp1:  DirDown | DirBackwards,
	ShapeRamp2:  DirDown | DirRight,
	ShapeRamp3:  DirDown | DirLeft,
	ShapeRamp4:  DirDown,
	ShapeRamp5:  DirDown,
	ShapeRamp6:  DirDown,
	ShapeRamp7:  DirDown,
	ShapeRamp8:  DirDown | DirBackwards | DirLeft,
	ShapeRamp9:  DirDown | DirBackwards | DirRight,
	ShapeRamp10: DirDown | DirForwards | DirLeft,
	ShapeRamp11: DirDown | DirForwards | DirRight,
}

// CoveredDirections returns the faces of the cell the shape fully covers.
func (s BlockShape) CoveredDirections() Direction3D {
	if s >= shapeCount {
		return DirNone
	}
	return coveredDirections[s]
}

func (s BlockShape) Covers(d Direction3D) bool {
	return s.CoveredDirections().Has(d)
}

func (s BlockShape) IsRamp() bool {
	return s > ShapeBlock && s < shapeCount
}

// SurfaceFraction returns the slope height inside the cell, in [0, 1] of a tile.
// px1/pz1 measure from the far side of the body's near edge, px2/pz2 from the near side
// of its far edge, all in tile units relative to the cell origin.
func (s BlockShape) SurfaceFraction(px1, px2, pz1, pz2 float64) float64 {
	var p float64
	switch s {
	case ShapeBlock:
		p = 1
	case ShapeRamp0:
		p = pz1
	case ShapeRamp1:
		p = pz2
	case ShapeRamp2:
		p = px1
	case ShapeRamp3:
		p = px2
	case ShapeRamp4:
		p = min(pz1, px1)
	case ShapeRamp5:
		p = min(pz1, px2)
	case ShapeRamp6:
		p = min(pz2, px1)
	case ShapeRamp7:
		p = min(pz2, px2)
	case ShapeRamp8:
		p = max(pz2, px2)
	case ShapeRamp9:
		p = max(pz2, px1)
	case ShapeRamp10:
		p = max(pz1, px2)
	case ShapeRamp11:
		p = max(pz1, px1)
	}
	return common.Clamp01(p)
}

func (s BlockShape) String() string {
	switch {
	case s == ShapeBlock:
		return "block"
	case s.IsRamp():
		return fmt.Sprintf("ramp%d", int(s-ShapeRamp0))
	default:
		return fmt.Sprintf("BlockShape(%d)", uint8(s))
	}
}

func (s BlockShape) MarshalText() ([]byte, error) {
	if s >= shapeCount {
		return nil, fmt.Errorf("physics: invalid block shape %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *BlockShape) UnmarshalText(text []byte) error {
	name := string(text)
	if name == "" || name == "block" {
		*s = ShapeBlock
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(name, "ramp%d", &n); err != nil || n < 0 || n > 11 || name != fmt.Sprintf("ramp%d", n) {
		return fmt.Errorf("physics: unknown block shape %q", name)
	}
	*s = ShapeRamp0 + BlockShape(n)
	return nil
}
