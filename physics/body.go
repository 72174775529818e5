package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// Body2D is the simulation state of one moving entity in 2D.
type Body2D struct {
	Position cp.Vector
	Velocity cp.Vector
	MaxSpeed float64
	Friction float64
	Gravity  cp.Vector

	// Mass must be positive.
	Mass    float64
	Force   cp.Vector
	Impulse cp.Vector

	// Bounds is relative to Position.
	Bounds common.Rect
	// Contact holds -1, 0 or +1 per axis: the direction the body was blocked in this step.
	Contact cp.Vector

	BounceFactor float64
}

// NewBody2D returns a unit-mass body with no speed limit.
func NewBody2D(bounds common.Rect) *Body2D {
	return &Body2D{
		MaxSpeed: math.MaxFloat64,
		Mass:     1,
		Bounds:   bounds,
	}
}

// ApplyForce accumulates a force for the next step.
func (b *Body2D) ApplyForce(f cp.Vector) {
	b.Force = b.Force.Add(f)
}

// ApplyImpulse accumulates an impulse for the next step.
func (b *Body2D) ApplyImpulse(i cp.Vector) {
	b.Impulse = b.Impulse.Add(i)
}

func (b *Body2D) WorldBounds() common.Rect {
	return b.Bounds.Offset(b.Position)
}

// Body3D is the simulation state of one moving entity in 3D.
type Body3D struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	MaxSpeed float64
	Friction mgl64.Vec3
	Gravity  mgl64.Vec3

	Mass    float64
	Force   mgl64.Vec3
	Impulse mgl64.Vec3

	Bounds      common.Cuboid
	Contact     mgl64.Vec3
	IsSubmerged bool

	BounceFactor float64
	// FloatForce replaces gravity with an upward acceleration while submerged.
	// Without it a submerged body does not fall.
	FloatForce *float64

	IgnoresPlatforms bool
	IgnoresGrates    bool
}

func NewBody3D(bounds common.Cuboid) *Body3D {
	return &Body3D{
		MaxSpeed: math.MaxFloat64,
		Mass:     1,
		Bounds:   bounds,
	}
}

func (b *Body3D) ApplyForce(f mgl64.Vec3) {
	b.Force = b.Force.Add(f)
}

func (b *Body3D) ApplyImpulse(i mgl64.Vec3) {
	b.Impulse = b.Impulse.Add(i)
}

func (b *Body3D) WorldBounds() common.Cuboid {
	return b.Bounds.Offset(b.Position)
}
