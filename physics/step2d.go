package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// Step2D advances body by dt seconds. When terrain is non-nil the body's motion is
// resolved against it before the position is integrated.
func Step2D(body *Body2D, dt float64, terrain Terrain2D) {
	body.Contact = cp.Vector{}

	body.Velocity = body.Velocity.Add(body.Gravity.Mult(dt))

	body.Velocity.X += body.Force.X * dt / body.Mass
	body.Velocity.Y += body.Force.Y * dt / body.Mass
	body.Force = cp.Vector{}

	body.Velocity.X += body.Impulse.X / body.Mass
	body.Velocity.Y += body.Impulse.Y / body.Mass
	body.Impulse = cp.Vector{}

	capVelocity2D(body)

	if terrain != nil {
		resolveTiles2D(body, dt, terrain)
	}

	body.Position = body.Position.Add(body.Velocity.Mult(dt))

	damping := 1 + body.Friction*dt
	body.Velocity.X /= damping
	body.Velocity.Y /= damping
}

func capVelocity2D(body *Body2D) {
	speed := body.Velocity.Length()
	if speed > body.MaxSpeed {
		body.Velocity.X = body.Velocity.X * body.MaxSpeed / speed
		body.Velocity.Y = body.Velocity.Y * body.MaxSpeed / speed
	}
}

// resolveTiles2D shoves the body to the nearest blocking tile edge, one axis at a time,
// until its swept bounds no longer reach an obstruction.
func resolveTiles2D(body *Body2D, dt float64, terrain Terrain2D) {
	ts := terrain.TileSize()
	tile := [3]float64{ts, ts, 1}
	size := [3]float64{body.Bounds.Width, body.Bounds.Height, 0}

	for {
		world := body.Bounds.Offset(body.Position).Shrink(terrain.EdgeThreshold())
		swept := world.Extend(body.Velocity.Mult(dt))
		vel := [3]float64{body.Velocity.X, body.Velocity.Y, 0}
		s := newSweep(2, tile, false, vel, rectBox(world), rectBox(swept), size)
		test := probe2D(terrain, world, ts)

		var hits [2]axisHit
		for axis := axisX; axis <= axisY; axis++ {
			if vel[axis] == 0 {
				continue
			}
			h, ok := s.scan(axis, test)
			hits[axis] = axisHit{hit: h, found: ok}
		}

		axis, ok := nearest(hits[:])
		if !ok {
			return
		}
		h := hits[axis].hit
		if axis == axisX {
			body.Contact.X = common.Sign(body.Velocity.X)
			body.Position.X = h.target - body.Bounds.X
			body.Velocity.X *= -body.BounceFactor
		} else {
			body.Contact.Y = common.Sign(body.Velocity.Y)
			body.Position.Y = h.target - body.Bounds.Y
			body.Velocity.Y *= -body.BounceFactor
		}
	}
}

// probe2D finds leading edges: a solid cell whose neighbour on the body's side is open.
// Platforms only count for a body falling onto them from above.
func probe2D(terrain Terrain2D, world common.Rect, ts float64) probeFunc {
	return func(cell [3]int, axis, dir int) probe {
		var opts SolidityOptions
		if axis == axisY && dir > 0 && world.Bottom() <= float64(cell[axisY])*ts {
			opts.ConsiderPlatforms = true
		}
		behind := cell
		behind[axis] -= dir
		if terrain.IsSolid(cell[axisX], cell[axisY], opts) &&
			!terrain.IsSolid(behind[axisX], behind[axisY], SolidityOptions{}) {
			return probe{kind: probeEdge}
		}
		return probe{}
	}
}
