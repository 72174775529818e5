package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle in y-down space: Y is the top edge.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(position, size cp.Vector) Rect {
	return Rect{X: position.X, Y: position.Y, Width: size.X, Height: size.Y}
}

// RectFromCenter builds a rectangle of the given size centred on center.
func RectFromCenter(center cp.Vector, width, height float64) Rect {
	return Rect{X: center.X - width/2, Y: center.Y - height/2, Width: width, Height: height}
}

func (r Rect) Position() cp.Vector { return cp.Vector{X: r.X, Y: r.Y} }
func (r Rect) Size() cp.Vector     { return cp.Vector{X: r.Width, Y: r.Height} }
func (r Rect) Center() cp.Vector   { return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2} }

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Touching edges do not count.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Offset translates the rectangle; the size is unchanged.
func (r Rect) Offset(amount cp.Vector) Rect {
	return Rect{X: r.X + amount.X, Y: r.Y + amount.Y, Width: r.Width, Height: r.Height}
}

// Extend grows the rectangle towards amount. Positive components grow the far side,
// negative components grow the near side by moving the origin.
func (r Rect) Extend(amount cp.Vector) Rect {
	out := r
	if amount.X < 0 {
		out.X += amount.X
		out.Width -= amount.X
	} else {
		out.Width += amount.X
	}
	if amount.Y < 0 {
		out.Y += amount.Y
		out.Height -= amount.Y
	} else {
		out.Height += amount.Y
	}
	return out
}

// Shrink insets every side by amount.
func (r Rect) Shrink(amount float64) Rect {
	return Rect{X: r.X + amount, Y: r.Y + amount, Width: r.Width - amount*2, Height: r.Height - amount*2}
}

// BB converts to a chipmunk bounding box. cp is y-agnostic, so B is the smaller y.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}
