package common

import "github.com/go-gl/mathgl/mgl64"

// Cuboid is an axis-aligned box in y-up space: Y is the bottom face, Z the front face.
type Cuboid struct {
	X, Y, Z              float64
	Width, Height, Depth float64
}

func NewCuboid(position, size mgl64.Vec3) Cuboid {
	return Cuboid{
		X: position[0], Y: position[1], Z: position[2],
		Width: size[0], Height: size[1], Depth: size[2],
	}
}

func CuboidFromCenter(center mgl64.Vec3, width, height, depth float64) Cuboid {
	return Cuboid{
		X: center[0] - width/2, Y: center[1] - height/2, Z: center[2] - depth/2,
		Width: width, Height: height, Depth: depth,
	}
}

func (c Cuboid) Position() mgl64.Vec3 { return mgl64.Vec3{c.X, c.Y, c.Z} }
func (c Cuboid) Size() mgl64.Vec3     { return mgl64.Vec3{c.Width, c.Height, c.Depth} }
func (c Cuboid) Center() mgl64.Vec3 {
	return mgl64.Vec3{c.X + c.Width/2, c.Y + c.Height/2, c.Z + c.Depth/2}
}

func (c Cuboid) Left() float64   { return c.X }
func (c Cuboid) Bottom() float64 { return c.Y }
func (c Cuboid) Front() float64  { return c.Z }
func (c Cuboid) Right() float64  { return c.X + c.Width }
func (c Cuboid) Top() float64    { return c.Y + c.Height }
func (c Cuboid) Back() float64   { return c.Z + c.Depth }

func (c Cuboid) Contains(p mgl64.Vec3) bool {
	return p[0] >= c.X && p[0] <= c.X+c.Width &&
		p[1] >= c.Y && p[1] <= c.Y+c.Height &&
		p[2] >= c.Z && p[2] <= c.Z+c.Depth
}

func (c Cuboid) Intersects(other Cuboid) bool {
	return c.X < other.X+other.Width && c.X+c.Width > other.X &&
		c.Y < other.Y+other.Height && c.Y+c.Height > other.Y &&
		c.Z < other.Z+other.Depth && c.Z+c.Depth > other.Z
}

func (c Cuboid) Offset(amount mgl64.Vec3) Cuboid {
	out := c
	out.X += amount[0]
	out.Y += amount[1]
	out.Z += amount[2]
	return out
}

// Extend grows the cuboid towards amount, see Rect.Extend.
func (c Cuboid) Extend(amount mgl64.Vec3) Cuboid {
	out := c
	if amount[0] < 0 {
		out.X += amount[0]
		out.Width -= amount[0]
	} else {
		out.Width += amount[0]
	}
	if amount[1] < 0 {
		out.Y += amount[1]
		out.Height -= amount[1]
	} else {
		out.Height += amount[1]
	}
	if amount[2] < 0 {
		out.Z += amount[2]
		out.Depth -= amount[2]
	} else {
		out.Depth += amount[2]
	}
	return out
}

func (c Cuboid) Shrink(amount float64) Cuboid {
	return Cuboid{
		X: c.X + amount, Y: c.Y + amount, Z: c.Z + amount,
		Width: c.Width - amount*2, Height: c.Height - amount*2, Depth: c.Depth - amount*2,
	}
}
