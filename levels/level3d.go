package levels

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/tilemap"
)

// Level3D is a voxel level. Cells are listed sparsely; unlisted cells are empty.
type Level3D struct {
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Depth    int        `json:"depth"`
	TileSize [3]float64 `json:"tile_size"`
	Cells    []CellSpec `json:"cells"`
	Entities []Entity3D `json:"entities,omitempty"`
	Spawn    [3]float64 `json:"spawn,omitempty"`
}

type CellSpec struct {
	X      int                       `json:"x"`
	Y      int                       `json:"y"`
	Z      int                       `json:"z"`
	Type   physics.TileCollisionType `json:"type"`
	Shape  physics.BlockShape        `json:"shape"`
	Liquid bool                      `json:"liquid,omitempty"`

	// Optional inclusive extent, so slabs can be listed as one entry.
	ToX *int `json:"to_x,omitempty"`
	ToY *int `json:"to_y,omitempty"`
	ToZ *int `json:"to_z,omitempty"`
}

// Entity3D places something in a 3D level, in world coordinates.
type Entity3D struct {
	Type     string         `json:"type"`
	Position [3]float64     `json:"position"`
	Props    map[string]any `json:"props,omitempty"`
}

func (e Entity3D) Prop(key string) string {
	s, _ := e.Props[key].(string)
	return s
}

func LoadLevel3D(name string) (*Level3D, error) {
	data, err := read(name)
	if err != nil {
		return nil, err
	}
	return ParseLevel3D(data)
}

func ParseLevel3D(data []byte) (*Level3D, error) {
	var lvl Level3D
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level3d: %w", err)
	}
	for axis, v := range lvl.TileSize {
		if v == 0 {
			lvl.TileSize[axis] = 1
		}
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level3D) Validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.Depth <= 0 {
		return invalid("dimensions %dx%dx%d", l.Width, l.Height, l.Depth)
	}
	for axis, v := range l.TileSize {
		if v <= 0 {
			return invalid("tile size axis %d is %v", axis, v)
		}
	}
	for i, c := range l.Cells {
		lo, hi := c.extent()
		for axis, limit := range [3]int{l.Width, l.Height, l.Depth} {
			if lo[axis] < 0 || hi[axis] >= limit || hi[axis] < lo[axis] {
				return invalid("cell %d spans %v..%v outside %dx%dx%d", i, lo, hi, l.Width, l.Height, l.Depth)
			}
		}
	}
	return nil
}

func (c CellSpec) extent() (lo, hi [3]int) {
	lo = [3]int{c.X, c.Y, c.Z}
	hi = lo
	for axis, to := range [3]*int{c.ToX, c.ToY, c.ToZ} {
		if to != nil {
			hi[axis] = *to
		}
	}
	return lo, hi
}

// TileMap builds the dense grid. Later cells overwrite earlier ones.
func (l *Level3D) TileMap() *tilemap.TileMap3D {
	m := tilemap.New3D(l.Width, l.Height, l.Depth, mgl64.Vec3(l.TileSize))
	for _, c := range l.Cells {
		lo, hi := c.extent()
		cell := tilemap.Cell{Type: c.Type, Shape: c.Shape, Liquid: c.Liquid}
		for x := lo[0]; x <= hi[0]; x++ {
			for y := lo[1]; y <= hi[1]; y++ {
				for z := lo[2]; z <= hi[2]; z++ {
					m.Set(x, y, z, cell)
				}
			}
		}
	}
	return m
}
