package physics

import "fmt"

// TileCollisionType classifies how a cell takes part in collisions.
type TileCollisionType uint8

const (
	TileNone TileCollisionType = iota
	TileSolid
	// TilePlatform blocks only bodies landing on it from above.
	TilePlatform
	// TileGrate blocks unless the body ignores grates.
	TileGrate
)

// SolidityOptions tune which tile types count as solid for a query.
type SolidityOptions struct {
	ConsiderPlatforms bool
	IgnoreGrates      bool
}

// IsSolid reports whether a cell of this type blocks movement under opts.
func (t TileCollisionType) IsSolid(opts SolidityOptions) bool {
	switch t {
	case TileSolid:
		return true
	case TilePlatform:
		return opts.ConsiderPlatforms
	case TileGrate:
		return !opts.IgnoreGrates
	default:
		return false
	}
}

var tileCollisionNames = [...]string{
	TileNone:     "none",
	TileSolid:    "solid",
	TilePlatform: "platform",
	TileGrate:    "grate",
}

func (t TileCollisionType) String() string {
	if int(t) < len(tileCollisionNames) {
		return tileCollisionNames[t]
	}
	return fmt.Sprintf("TileCollisionType(%d)", uint8(t))
}

func (t TileCollisionType) MarshalText() ([]byte, error) {
	if int(t) >= len(tileCollisionNames) {
		return nil, fmt.Errorf("physics: invalid tile collision type %d", uint8(t))
	}
	return []byte(tileCollisionNames[t]), nil
}

func (t *TileCollisionType) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*t = TileNone
		return nil
	}
	for i, name := range tileCollisionNames {
		if name == s {
			*t = TileCollisionType(i)
			return nil
		}
	}
	return fmt.Errorf("physics: unknown tile collision type %q", s)
}
