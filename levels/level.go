package levels

import (
	"encoding/json"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/tilemap"
)

const DefaultTileSize = 32

// Tile values stored in physics layers.
const (
	TileEmpty = iota
	TileSolid
	TilePlatform
	TileGrate
)

var tileTypes = [...]physics.TileCollisionType{
	TileEmpty:    physics.TileNone,
	TileSolid:    physics.TileSolid,
	TilePlatform: physics.TilePlatform,
	TileGrate:    physics.TileGrate,
}

// Level is a 2D tile level. Each layer is a flat row-major array of Width*Height
// values; only layers flagged in LayerMeta take part in collisions.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`

	// Spawn point in tile coordinates.
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Entity places something in the level, in tile coordinates.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Prop returns a string property, or "" when missing.
func (e Entity) Prop(key string) string {
	s, _ := e.Props[key].(string)
	return s
}

// LoadLevel reads and validates a 2D level. The ".json" suffix is optional.
func LoadLevel(name string) (*Level, error) {
	data, err := read(name)
	if err != nil {
		return nil, err
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	if lvl.TileSize == 0 {
		lvl.TileSize = DefaultTileSize
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return invalid("dimensions %dx%d", l.Width, l.Height)
	}
	if l.TileSize <= 0 {
		return invalid("tile size %v", l.TileSize)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return invalid("layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
		if !l.hasPhysics(i) {
			continue
		}
		for idx, v := range layer {
			if v < 0 || v >= len(tileTypes) {
				return invalid("layer %d tile %d has value %d", i, idx, v)
			}
		}
	}
	return nil
}

func (l *Level) hasPhysics(layer int) bool {
	return layer < len(l.LayerMeta) && l.LayerMeta[layer].Physics
}

// TileMap flattens the physics layers into one collision grid. Later layers override
// earlier ones wherever they are non-empty.
func (l *Level) TileMap() *tilemap.TileMap {
	m := tilemap.New(l.Width, l.Height, l.TileSize)
	for i, layer := range l.Layers {
		if !l.hasPhysics(i) {
			continue
		}
		for idx, v := range layer {
			if v != TileEmpty {
				m.Tiles[idx] = tileTypes[v]
			}
		}
	}
	return m
}

// Spawn returns the world position of the spawn tile's top-left corner.
func (l *Level) Spawn() cp.Vector {
	return l.TileToWorld(l.SpawnX, l.SpawnY)
}

func (l *Level) TileToWorld(x, y int) cp.Vector {
	return cp.Vector{X: float64(x) * l.TileSize, Y: float64(y) * l.TileSize}
}
