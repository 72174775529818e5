package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tilephysics/common"
)

// maxPasses3D bounds the resolver's work per step. A deeply embedded body may be left
// partially penetrating; it is corrected over the following steps instead.
const maxPasses3D = 3

// Step3D advances body by dt seconds against terrain, which may be nil.
//
// Axes corrected by the resolver keep the flush position it committed; only the
// remaining axes are integrated by velocity.
func Step3D(body *Body3D, dt float64, terrain Terrain3D) {
	submerged := body.IsSubmerged
	body.Contact = mgl64.Vec3{}
	body.IsSubmerged = false

	switch {
	case !submerged:
		body.Velocity = body.Velocity.Add(body.Gravity.Mul(dt))
	case body.FloatForce != nil:
		body.Velocity[axisY] += *body.FloatForce * dt
	}

	for axis := 0; axis < 3; axis++ {
		body.Velocity[axis] += body.Force[axis] * dt / body.Mass
	}
	body.Force = mgl64.Vec3{}

	for axis := 0; axis < 3; axis++ {
		body.Velocity[axis] += body.Impulse[axis] / body.Mass
	}
	body.Impulse = mgl64.Vec3{}

	if speed := body.Velocity.Len(); speed > body.MaxSpeed {
		for axis := 0; axis < 3; axis++ {
			body.Velocity[axis] = body.Velocity[axis] * body.MaxSpeed / speed
		}
	}

	var resolved [3]bool
	if terrain != nil {
		resolved = resolveTiles3D(body, dt, terrain)
		markSubmerged(body, terrain)
	}

	for axis := 0; axis < 3; axis++ {
		if !resolved[axis] {
			body.Position[axis] += body.Velocity[axis] * dt
		}
	}

	for axis := 0; axis < 3; axis++ {
		body.Velocity[axis] /= 1 + body.Friction[axis]*dt
	}
}

// resolveTiles3D corrects each axis at most once, over at most maxPasses3D passes.
func resolveTiles3D(body *Body3D, dt float64, terrain Terrain3D) [3]bool {
	tile := [3]float64(terrain.TileSize())
	size := [3]float64{body.Bounds.Width, body.Bounds.Height, body.Bounds.Depth}
	origin := [3]float64{body.Bounds.X, body.Bounds.Y, body.Bounds.Z}
	enabled := [3]bool{true, true, true}
	var resolved [3]bool

	for pass := 0; pass < maxPasses3D; pass++ {
		world := body.Bounds.Offset(body.Position).Shrink(terrain.EdgeThreshold())
		vel := [3]float64(body.Velocity)
		test := probe3D(body, terrain, world, tile, dt)

		var hits [3]axisHit
		for axis := 0; axis < 3; axis++ {
			if !enabled[axis] || vel[axis] == 0 {
				continue
			}
			var step mgl64.Vec3
			step[axis] = vel[axis] * dt
			s := newSweep(3, tile, true, vel, cuboidBox(world), cuboidBox(world.Extend(step)), size)
			h, ok := s.scan(axis, test)
			hits[axis] = axisHit{hit: h, found: ok}
		}

		axis, ok := nearest(hits[:])
		if !ok {
			break
		}
		body.Contact[axis] = common.Sign(body.Velocity[axis])
		body.Position[axis] = hits[axis].target - origin[axis]
		body.Velocity[axis] *= -body.BounceFactor
		enabled[axis] = false
		resolved[axis] = true
	}
	return resolved
}

// probe3D finds leading block faces and ramp surfaces.
//
// Along X and Z a full block blocks unless the cell behind it covers the face that
// points back at the body. Along Y a full block blocks unless a full block sits behind
// it; a ramp blocks when the body's projected foot ends up under its slope.
func probe3D(body *Body3D, terrain Terrain3D, world common.Cuboid, tile [3]float64, dt float64) probeFunc {
	base := SolidityOptions{IgnoreGrates: body.IgnoresGrates}
	foot := body.Position[axisY] + body.Bounds.Y + body.Velocity[axisY]*dt

	return func(cell [3]int, axis, dir int) probe {
		opts := base
		if axis == axisY && dir < 0 && !body.IgnoresPlatforms &&
			world.Bottom() >= float64(cell[axisY]+1)*tile[axisY] {
			opts.ConsiderPlatforms = true
		}
		if !terrain.IsSolid(cell[0], cell[1], cell[2], opts) {
			return probe{}
		}
		shape := terrain.BlockShape(cell[0], cell[1], cell[2])

		behind := cell
		behind[axis] -= dir
		behindSolid := terrain.IsSolid(behind[0], behind[1], behind[2], base)
		var behindShape BlockShape
		if behindSolid {
			behindShape = terrain.BlockShape(behind[0], behind[1], behind[2])
		}

		if axis != axisY {
			face := axisDirection(axis, -dir)
			if shape == ShapeBlock && !(behindSolid && behindShape.Covers(face)) {
				return probe{kind: probeEdge}
			}
			return probe{}
		}

		if shape == ShapeBlock {
			if behindSolid && behindShape == ShapeBlock {
				return probe{}
			}
			return probe{kind: probeEdge}
		}

		px1 := 1 - (world.Left()/tile[axisX] - float64(cell[axisX]))
		px2 := world.Right()/tile[axisX] - float64(cell[axisX])
		pz1 := 1 - (world.Front()/tile[axisZ] - float64(cell[axisZ]))
		pz2 := world.Back()/tile[axisZ] - float64(cell[axisZ])
		surface := (float64(cell[axisY]) + shape.SurfaceFraction(px1, px2, pz1, pz2)) * tile[axisY]
		if foot <= surface {
			return probe{kind: probeSurface, surface: surface}
		}
		return probe{}
	}
}

func markSubmerged(body *Body3D, terrain Terrain3D) {
	liquid, ok := terrain.(LiquidTerrain3D)
	if !ok {
		return
	}
	world := body.Bounds.Offset(body.Position).Shrink(terrain.EdgeThreshold())
	ts := terrain.TileSize()
	x0, x1 := common.TileIndex(world.Left(), ts[axisX]), common.TileIndex(world.Right(), ts[axisX])
	y0, y1 := common.TileIndex(world.Bottom(), ts[axisY]), common.TileIndex(world.Top(), ts[axisY])
	z0, z1 := common.TileIndex(world.Front(), ts[axisZ]), common.TileIndex(world.Back(), ts[axisZ])
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				if liquid.IsLiquid(x, y, z) {
					body.IsSubmerged = true
					return
				}
			}
		}
	}
}
