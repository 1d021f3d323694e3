package blur

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// TranslateVec creates a translation matrix from a vector.
func TranslateVec(v Vec2) Matrix {
	return Translate(v.X, v.Y)
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// ScaleVec creates a scaling matrix from a per-axis scale vector.
func ScaleVec(v Vec2) Matrix {
	return Scale(v.X, v.Y)
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Basis returns the matrix with its translation removed.
// The result maps vectors the same way m does but leaves positions at the
// origin fixed.
func (m Matrix) Basis() Matrix {
	m.C = 0
	m.F = 0
	return m
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVec applies the transformation to a vector (no translation).
func (m Matrix) TransformVec(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.D*v.X + m.E*v.Y,
	}
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsTranslationScaleOnly reports whether the matrix has no rotation or
// shear components. Snapshot transforms produced by filter inputs are
// expected to satisfy this so texture-space rectangles stay axis-aligned.
func (m Matrix) IsTranslationScaleOnly() bool {
	return m.B == 0 && m.D == 0
}

// ExtractScale returns the per-axis scale of the matrix, computed by
// transforming the two unit basis vectors and taking their lengths. This
// captures how much the transform stretches content independent of
// rotation.
func (m Matrix) ExtractScale() Vec2 {
	sx := m.TransformVec(Vec2{X: 1, Y: 0})
	sy := m.TransformVec(Vec2{X: 0, Y: 1})
	return Vec2{X: sx.Length(), Y: sy.Length()}
}
