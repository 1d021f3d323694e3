package blur

import "math"

// Point represents a 2D position.
type Point struct {
	X, Y float64
}

// P is a convenience function to create a Point.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the point translated by the vector.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Lerp linearly interpolates between p and q.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Vec2 represents a 2D displacement vector.
// Unlike Point which represents a position, Vec2 represents a direction and
// magnitude. Sigma values, paddings, and scale factors are Vec2s because
// they are per-axis quantities, not positions.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product of two vectors.
func (v Vec2) MulVec(w Vec2) Vec2 {
	return Vec2{X: v.X * w.X, Y: v.Y * w.Y}
}

// DivVec returns the component-wise quotient of two vectors.
func (v Vec2) DivVec(w Vec2) Vec2 {
	return Vec2{X: v.X / w.X, Y: v.Y / w.Y}
}

// Recip returns the component-wise reciprocal of the vector.
func (v Vec2) Recip() Vec2 {
	return Vec2{X: 1 / v.X, Y: 1 / v.Y}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Abs returns the component-wise absolute value of the vector.
func (v Vec2) Abs() Vec2 {
	return Vec2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// Ceil returns the component-wise ceiling of the vector.
func (v Vec2) Ceil() Vec2 {
	return Vec2{X: math.Ceil(v.X), Y: math.Ceil(v.Y)}
}

// Clamp returns the vector with each component clamped to [lo, hi].
func (v Vec2) Clamp(lo, hi float64) Vec2 {
	return Vec2{
		X: math.Min(math.Max(v.X, lo), hi),
		Y: math.Min(math.Max(v.Y, lo), hi),
	}
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// ISize represents an integer texture or render target size.
type ISize struct {
	Width, Height int
}

// ISizeRound creates an ISize by rounding each component of the vector.
func ISizeRound(v Vec2) ISize {
	return ISize{
		Width:  int(math.Round(v.X)),
		Height: int(math.Round(v.Y)),
	}
}

// Vec returns the size as a Vec2.
func (s ISize) Vec() Vec2 {
	return Vec2{X: float64(s.Width), Y: float64(s.Height)}
}

// IsEmpty returns true if the size has no area.
func (s ISize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}
