package prefabs

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/physics"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// Axes is a per-axis value. A single YAML scalar applies to every axis.
type Axes []float64

func (a *Axes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*a = Axes{v}
		return nil
	}
	var vs []float64
	if err := value.Decode(&vs); err != nil {
		return err
	}
	*a = vs
	return nil
}

func (a Axes) At(axis int) float64 {
	switch {
	case len(a) == 1:
		return a[0]
	case axis < len(a):
		return a[axis]
	default:
		return 0
	}
}

// BodySpec describes a physics body. Bounds are x,y,w,h in 2D and x,y,z,w,h,d in 3D.
type BodySpec struct {
	Name      string    `yaml:"name"`
	Dimension int       `yaml:"dimension"`
	Bounds    []float64 `yaml:"bounds"`
	// Mass defaults to 1.
	Mass *float64 `yaml:"mass"`
	// MaxSpeed of zero means unlimited.
	MaxSpeed         float64   `yaml:"max_speed"`
	Friction         Axes      `yaml:"friction"`
	Gravity          []float64 `yaml:"gravity"`
	Bounce           float64   `yaml:"bounce"`
	FloatForce       *float64  `yaml:"float_force"`
	IgnoresPlatforms bool      `yaml:"ignores_platforms"`
	IgnoresGrates    bool      `yaml:"ignores_grates"`
	Script           string    `yaml:"script"`
}

func LoadBodySpec(filename string) (BodySpec, error) {
	spec, err := LoadSpec[BodySpec](filename)
	if err != nil {
		return spec, err
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func ParseBodySpec(data []byte) (BodySpec, error) {
	var spec BodySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal body spec: %w", err)
	}
	return spec, spec.Validate()
}

func (s *BodySpec) Validate() error {
	if s.Dimension == 0 {
		s.Dimension = 2
	}
	if s.Dimension != 2 && s.Dimension != 3 {
		return fmt.Errorf("%w: dimension %d", ErrInvalidSpec, s.Dimension)
	}
	if want := 2 * s.Dimension; len(s.Bounds) != want {
		return fmt.Errorf("%w: bounds need %d values, got %d", ErrInvalidSpec, want, len(s.Bounds))
	}
	for _, v := range s.Bounds[s.Dimension:] {
		if v < 0 {
			return fmt.Errorf("%w: negative bounds size %v", ErrInvalidSpec, v)
		}
	}
	if s.Mass != nil && !(*s.Mass > 0) {
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidSpec, *s.Mass)
	}
	if len(s.Gravity) != 0 && len(s.Gravity) != s.Dimension {
		return fmt.Errorf("%w: gravity needs %d values, got %d", ErrInvalidSpec, s.Dimension, len(s.Gravity))
	}
	if s.MaxSpeed < 0 {
		return fmt.Errorf("%w: negative max_speed", ErrInvalidSpec)
	}
	return nil
}

func (s BodySpec) mass() float64 {
	if s.Mass == nil {
		return 1
	}
	return *s.Mass
}

func (s BodySpec) maxSpeed() float64 {
	if s.MaxSpeed == 0 {
		return math.MaxFloat64
	}
	return s.MaxSpeed
}

func (s BodySpec) gravity(axis int) float64 {
	if axis < len(s.Gravity) {
		return s.Gravity[axis]
	}
	return 0
}

// Build2D creates a body at rest at the origin.
func (s BodySpec) Build2D() *physics.Body2D {
	b := physics.NewBody2D(common.Rect{})
	s.Apply2D(b)
	return b
}

// Apply2D copies the spec's physical parameters onto b, leaving its position,
// velocity and accumulators alone.
func (s BodySpec) Apply2D(b *physics.Body2D) {
	b.Bounds = common.Rect{X: s.Bounds[0], Y: s.Bounds[1], Width: s.Bounds[2], Height: s.Bounds[3]}
	b.Mass = s.mass()
	b.MaxSpeed = s.maxSpeed()
	b.Friction = s.Friction.At(0)
	b.Gravity = cp.Vector{X: s.gravity(0), Y: s.gravity(1)}
	b.BounceFactor = s.Bounce
}

func (s BodySpec) Build3D() *physics.Body3D {
	b := physics.NewBody3D(common.Cuboid{})
	s.Apply3D(b)
	return b
}

func (s BodySpec) Apply3D(b *physics.Body3D) {
	b.Bounds = common.Cuboid{
		X: s.Bounds[0], Y: s.Bounds[1], Z: s.Bounds[2],
		Width: s.Bounds[3], Height: s.Bounds[4], Depth: s.Bounds[5],
	}
	b.Mass = s.mass()
	b.MaxSpeed = s.maxSpeed()
	b.Friction = mgl64.Vec3{s.Friction.At(0), s.Friction.At(1), s.Friction.At(2)}
	b.Gravity = mgl64.Vec3{s.gravity(0), s.gravity(1), s.gravity(2)}
	b.BounceFactor = s.Bounce
	b.FloatForce = nil
	if s.FloatForce != nil {
		f := *s.FloatForce
		b.FloatForce = &f
	}
	b.IgnoresPlatforms = s.IgnoresPlatforms
	b.IgnoresGrates = s.IgnoresGrates
}
