package blur

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// RectXYWH creates a rectangle from an origin and a size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{
		Min: Point{X: x, Y: y},
		Max: Point{X: x + w, Y: y + h},
	}
}

// RectFromSize creates a rectangle at the origin with the given size.
func RectFromSize(size Vec2) Rect {
	return RectXYWH(0, 0, size.X, size.Y)
}

// RectFromISize creates a rectangle at the origin with the given
// integer size.
func RectFromISize(size ISize) Rect {
	return RectFromSize(size.Vec())
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns the size of the rectangle as a Vec2.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Width(), Y: r.Height()}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Expand grows the rectangle by the given amount on each side.
// Negative amounts shrink it.
func (r Rect) Expand(v Vec2) Rect {
	return Rect{
		Min: Point{X: r.Min.X - v.X, Y: r.Min.Y - v.Y},
		Max: Point{X: r.Max.X + v.X, Y: r.Max.Y + v.Y},
	}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Intersect returns the intersection of two rectangles.
// The second return value is false when the rectangles do not overlap.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	result := Rect{
		Min: Point{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}
	if result.IsEmpty() {
		return Rect{}, false
	}
	return result, true
}

// ContainsRect returns true if other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Min.X >= r.Min.X && other.Min.Y >= r.Min.Y &&
		other.Max.X <= r.Max.X && other.Max.Y <= r.Max.Y
}

// Scale returns the rectangle with both corners scaled per axis.
func (r Rect) Scale(v Vec2) Rect {
	return NewRect(
		Point{X: r.Min.X * v.X, Y: r.Min.Y * v.Y},
		Point{X: r.Max.X * v.X, Y: r.Max.Y * v.Y},
	)
}

// TransformBounds returns the axis-aligned bounding box of the rectangle
// after applying the transformation to all four corners.
func (r Rect) TransformBounds(m Matrix) Rect {
	q := r.Corners().Transform(m)
	result := NewRect(q[0], q[1])
	for _, p := range q[2:] {
		result = result.Union(Rect{Min: p, Max: p})
	}
	return result
}

// Corners returns the four corners of the rectangle as a Quad.
func (r Rect) Corners() Quad {
	return Quad{
		Point{X: r.Min.X, Y: r.Min.Y},
		Point{X: r.Max.X, Y: r.Min.Y},
		Point{X: r.Min.X, Y: r.Max.Y},
		Point{X: r.Max.X, Y: r.Max.Y},
	}
}

// Quad holds the four corners of a (possibly transformed) rectangle in the
// order top-left, top-right, bottom-left, bottom-right. This matches the
// vertex order of a two-triangle strip, so a Quad can be handed directly to
// a textured-quad draw.
type Quad [4]Point

// UnitQuad returns the quad covering the unit square.
func UnitQuad() Quad {
	return Quad{
		Point{X: 0, Y: 0},
		Point{X: 1, Y: 0},
		Point{X: 0, Y: 1},
		Point{X: 1, Y: 1},
	}
}

// QuadFromRect returns the quad covering the rectangle.
func QuadFromRect(r Rect) Quad {
	return r.Corners()
}

// Transform applies the transformation to all four corners.
func (q Quad) Transform(m Matrix) Quad {
	return Quad{
		m.TransformPoint(q[0]),
		m.TransformPoint(q[1]),
		m.TransformPoint(q[2]),
		m.TransformPoint(q[3]),
	}
}
