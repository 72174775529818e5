package physics

import (
	"github.com/milk9111/tilephysics/common"
)

const (
	axisX = iota
	axisY
	axisZ
)

// box is a dimension-agnostic view of a Rect or Cuboid. Unused axes have zero size.
type box struct {
	min  [3]float64
	size [3]float64
}

func (b box) max(axis int) float64 {
	return b.min[axis] + b.size[axis]
}

func rectBox(r common.Rect) box {
	return box{
		min:  [3]float64{r.X, r.Y, 0},
		size: [3]float64{r.Width, r.Height, 0},
	}
}

func cuboidBox(c common.Cuboid) box {
	return box{
		min:  [3]float64{c.X, c.Y, c.Z},
		size: [3]float64{c.Width, c.Height, c.Depth},
	}
}

type probeKind uint8

const (
	probeMiss probeKind = iota
	// probeEdge: the tile boundary itself blocks.
	probeEdge
	// probeSurface: a sloped surface inside the cell blocks at probe.surface.
	probeSurface
)

type probe struct {
	kind    probeKind
	surface float64
}

// probeFunc decides whether cell blocks travel along axis in direction dir (+1/-1).
type probeFunc func(cell [3]int, axis, dir int) probe

// hit is the resolution candidate found on one axis.
type hit struct {
	// target is the bounds coordinate that puts the body flush with the obstruction.
	target float64
	// overlap is the leading face's penetration past the obstruction. Negative values
	// mean the face has not reached it yet.
	overlap float64
}

type axisHit struct {
	hit
	found bool
}

// sweep walks the tile range covered by a body's swept bounds.
type sweep struct {
	dims int
	tile [3]float64
	// ordered makes orthogonal scans follow the body's velocity instead of ascending.
	ordered bool
	vel     [3]float64
	world   box
	size    [3]float64
	lo, hi  [3]int
}

func newSweep(dims int, tile [3]float64, ordered bool, vel [3]float64, world, swept box, size [3]float64) *sweep {
	s := &sweep{dims: dims, tile: tile, ordered: ordered, vel: vel, world: world, size: size}
	for axis := 0; axis < dims; axis++ {
		s.lo[axis] = common.TileIndex(swept.min[axis], tile[axis])
		s.hi[axis] = common.TileIndex(swept.max(axis), tile[axis])
	}
	return s
}

func orthogonalAxes(axis int) (int, int) {
	switch axis {
	case axisX:
		return axisY, axisZ
	case axisY:
		return axisX, axisZ
	default:
		return axisX, axisY
	}
}

// span is the iteration range over an orthogonal axis. Axes beyond dims yield the
// single index 0.
func (s *sweep) span(axis int) (start, end, step int) {
	if axis >= s.dims {
		return 0, 1, 1
	}
	if s.ordered && s.vel[axis] < 0 {
		return s.hi[axis], s.lo[axis] - 1, -1
	}
	return s.lo[axis], s.hi[axis] + 1, 1
}

func before(i, end, step int) bool {
	if step > 0 {
		return i < end
	}
	return i > end
}

// scan walks tile layers outward from the body's leading side along axis and returns
// the first obstruction reported by test.
func (s *sweep) scan(axis int, test probeFunc) (hit, bool) {
	dir := 1
	start, end := s.lo[axis]+1, s.hi[axis]+1
	if s.vel[axis] < 0 {
		dir = -1
		start, end = s.hi[axis]-1, s.lo[axis]-1
	}

	a, b := orthogonalAxes(axis)
	aStart, aEnd, aStep := s.span(a)
	bStart, bEnd, bStep := s.span(b)

	var cell [3]int
	for c := start; before(c, end, dir); c += dir {
		cell[axis] = c
		for i := aStart; before(i, aEnd, aStep); i += aStep {
			cell[a] = i
			for j := bStart; before(j, bEnd, bStep); j += bStep {
				cell[b] = j
				switch p := test(cell, axis, dir); p.kind {
				case probeEdge:
					return s.edgeHit(axis, c, dir), true
				case probeSurface:
					return hit{target: p.surface, overlap: p.surface - s.world.min[axis]}, true
				}
			}
		}
	}
	return hit{}, false
}

func (s *sweep) edgeHit(axis, cell, dir int) hit {
	if dir > 0 {
		edge := float64(cell) * s.tile[axis]
		return hit{target: edge - s.size[axis], overlap: s.world.max(axis) - edge}
	}
	edge := float64(cell+1) * s.tile[axis]
	return hit{target: edge, overlap: edge - s.world.min[axis]}
}

// nearest returns the axis with the smallest overlap. Ties keep the lower axis, so X
// wins over Y and Y over Z.
func nearest(hits []axisHit) (int, bool) {
	best := -1
	for axis, h := range hits {
		if !h.found {
			continue
		}
		if best < 0 || h.overlap < hits[best].overlap {
			best = axis
		}
	}
	return best, best >= 0
}
