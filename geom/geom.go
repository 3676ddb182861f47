// Package geom holds the small value types shared by layout, rendering and
// event routing: points and axis-aligned rectangles in float32 pixels.
package geom

import "github.com/chewxy/math32"

// Vec2 is a point or a size, depending on context.
type Vec2 struct {
	X, Y float32
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Bounds represents an axis-aligned rectangle.
// Used both for resolved widget bounds and for clip rectangles.
type Bounds struct {
	X, Y          float32 // Top-left corner
	Width, Height float32
}

// Rect builds Bounds from a position and a size.
func Rect(pos, size Vec2) Bounds {
	return Bounds{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}
}

// Pos returns the top-left corner.
func (b Bounds) Pos() Vec2 { return Vec2{b.X, b.Y} }

// Size returns the width and height as a Vec2.
func (b Bounds) Size() Vec2 { return Vec2{b.Width, b.Height} }

// Right returns the x coordinate of the right edge.
func (b Bounds) Right() float32 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Bounds) Bottom() float32 { return b.Y + b.Height }

// Contains checks if a point is within the bounds.
// The right and bottom edges are exclusive.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.X && p.X < b.X+b.Width &&
		p.Y >= b.Y && p.Y < b.Y+b.Height
}

// LocalPoint converts a point in the bounds' coordinate space to one
// relative to the bounds' top-left corner.
func (b Bounds) LocalPoint(p Vec2) Vec2 {
	return Vec2{p.X - b.X, p.Y - b.Y}
}

// Translate returns the bounds moved by offset.
func (b Bounds) Translate(offset Vec2) Bounds {
	b.X += offset.X
	b.Y += offset.Y
	return b
}

// Intersects checks if two bounds overlap.
func (b Bounds) Intersects(other Bounds) bool {
	return b.X < other.X+other.Width &&
		b.X+b.Width > other.X &&
		b.Y < other.Y+other.Height &&
		b.Y+b.Height > other.Y
}

// Intersect returns the overlapping region, or empty bounds at the origin
// of b when the two do not overlap.
func (b Bounds) Intersect(other Bounds) Bounds {
	x0 := math32.Max(b.X, other.X)
	y0 := math32.Max(b.Y, other.Y)
	x1 := math32.Min(b.Right(), other.Right())
	y1 := math32.Min(b.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Bounds{X: b.X, Y: b.Y}
	}
	return Bounds{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the bounds have no area.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}
