package prefabs

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBodySpecFriction(t *testing.T) {
	scalar, err := ParseBodySpec([]byte("dimension: 3\nbounds: [0, 0, 0, 1, 1, 1]\nfriction: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, scalar.Build3D().Friction)

	perAxis, err := ParseBodySpec([]byte("dimension: 3\nbounds: [0, 0, 0, 1, 1, 1]\nfriction: [1, 0, 3]\n"))
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1, 0, 3}, perAxis.Build3D().Friction)
}

func TestParseBodySpecInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero_mass", "bounds: [0, 0, 1, 1]\nmass: 0\n"},
		{"negative_mass", "bounds: [0, 0, 1, 1]\nmass: -2\n"},
		{"short_bounds", "bounds: [0, 0, 1]\n"},
		{"3d_bounds_for_2d", "bounds: [0, 0, 0, 1, 1, 1]\n"},
		{"negative_size", "bounds: [0, 0, -1, 1]\n"},
		{"bad_dimension", "dimension: 4\nbounds: [0, 0, 1, 1]\n"},
		{"gravity_length", "bounds: [0, 0, 1, 1]\ngravity: [0, 1, 0]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseBodySpec([]byte(c.yaml))
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestBuild2D(t *testing.T) {
	spec, err := ParseBodySpec([]byte("bounds: [1, 2, 8, 10]\ngravity: [0, 900]\nbounce: 0.25\nfriction: 3\n"))
	require.NoError(t, err)

	b := spec.Build2D()

	assert.Equal(t, common.Rect{X: 1, Y: 2, Width: 8, Height: 10}, b.Bounds)
	assert.Equal(t, 1.0, b.Mass)
	assert.Equal(t, math.MaxFloat64, b.MaxSpeed)
	assert.Equal(t, 3.0, b.Friction)
	assert.Equal(t, cp.Vector{Y: 900}, b.Gravity)
	assert.Equal(t, 0.25, b.BounceFactor)
}

func TestApply2DKeepsMotionState(t *testing.T) {
	spec, err := ParseBodySpec([]byte("bounds: [0, 0, 4, 4]\nmass: 2\n"))
	require.NoError(t, err)
	b := spec.Build2D()
	b.Position = cp.Vector{X: 10, Y: 20}
	b.Velocity = cp.Vector{X: 1}
	b.ApplyImpulse(cp.Vector{Y: -3})

	spec.Bounds = []float64{0, 0, 6, 6}
	spec.Apply2D(b)

	assert.Equal(t, 6.0, b.Bounds.Width)
	assert.Equal(t, 2.0, b.Mass)
	assert.Equal(t, cp.Vector{X: 10, Y: 20}, b.Position)
	assert.Equal(t, cp.Vector{X: 1}, b.Velocity)
	assert.Equal(t, cp.Vector{Y: -3}, b.Impulse)
}

func TestBuild3DCopiesFloatForce(t *testing.T) {
	spec, err := ParseBodySpec([]byte("dimension: 3\nbounds: [0, 0, 0, 1, 2, 1]\nfloat_force: 4\nignores_platforms: true\n"))
	require.NoError(t, err)

	a, b := spec.Build3D(), spec.Build3D()
	require.NotNil(t, a.FloatForce)
	*a.FloatForce = 9

	assert.Equal(t, 4.0, *b.FloatForce)
	assert.Equal(t, 2.0, b.Bounds.Height)
	assert.True(t, b.IgnoresPlatforms)
	assert.False(t, b.IgnoresGrates)
}

func TestEmbeddedPrefabsAreValid(t *testing.T) {
	for _, name := range []string{"player", "crate.yaml", "prefabs/ball.yaml", "buoy"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadBodySpec(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
			if spec.Script != "" {
				src, err := LoadScript(spec.Script)
				require.NoError(t, err)
				assert.Contains(t, string(src), "update")
			}
		})
	}
}

func TestLoadBodySpecMissing(t *testing.T) {
	_, err := LoadBodySpec("ghost")
	assert.ErrorContains(t, err, "prefabs: load ghost")
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "player.yaml", cleanPrefabPath("prefabs/player"))
	assert.Equal(t, "scripts/hop.tengo", cleanScriptPath("prefabs/scripts/hop"))
	assert.Equal(t, "scripts/hop.tengo", cleanScriptPath("hop.tengo"))
}
