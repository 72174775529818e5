package tilemap

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/physics"
)

// Region is a rectangle of equal tiles, in tile coordinates.
type Region struct {
	X, Y, W, H int
	Type       physics.TileCollisionType
}

// BB returns the region in world units.
func (r Region) BB(tileSize float64) cp.BB {
	return cp.BB{
		L: float64(r.X) * tileSize,
		B: float64(r.Y) * tileSize,
		R: float64(r.X+r.W) * tileSize,
		T: float64(r.Y+r.H) * tileSize,
	}
}

// Merge covers every non-empty tile with as few rectangles as a greedy scan finds.
// Each rectangle is grown right first, then down, and only joins tiles of one type.
func Merge(m *TileMap) []Region {
	var regions []Region
	processed := make([]bool, len(m.Tiles))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := y*m.Width + x
			t := m.Tiles[idx]
			if processed[idx] || t == physics.TileNone {
				continue
			}

			w := 1
			for x+w < m.Width {
				i := idx + w
				if processed[i] || m.Tiles[i] != t {
					break
				}
				w++
			}

			h := 1
		grow:
			for y+h < m.Height {
				for xi := x; xi < x+w; xi++ {
					i := (y+h)*m.Width + xi
					if processed[i] || m.Tiles[i] != t {
						break grow
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*m.Width+xx] = true
				}
			}
			regions = append(regions, Region{X: x, Y: y, W: w, H: h, Type: t})
		}
	}
	return regions
}
