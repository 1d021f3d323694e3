package blur

// RectGeometry is a rectangular mask.
type RectGeometry struct {
	rect Rect
}

// NewRectGeometry creates a rectangular mask geometry.
func NewRectGeometry(rect Rect) *RectGeometry {
	return &RectGeometry{rect: rect}
}

// Coverage returns the rect's bounds under transform.
func (g *RectGeometry) Coverage(transform Matrix) (Rect, bool) {
	if g.rect.IsEmpty() {
		return Rect{}, false
	}
	return g.rect.TransformBounds(transform), true
}

// Quad returns the rect's corners under transform, for backends that clip
// by quad intersection.
func (g *RectGeometry) Quad(transform Matrix) Quad {
	return g.rect.Corners().Transform(transform)
}

// EllipseGeometry is an elliptical mask inscribed in its bounds. Backends
// without analytic ellipse clipping fall back to the bounding rect; the
// coverage contract only promises an upper bound.
type EllipseGeometry struct {
	bounds Rect
}

// NewEllipseGeometry creates an elliptical mask filling bounds.
func NewEllipseGeometry(bounds Rect) *EllipseGeometry {
	return &EllipseGeometry{bounds: bounds}
}

// Coverage returns the ellipse's bounds under transform.
func (g *EllipseGeometry) Coverage(transform Matrix) (Rect, bool) {
	if g.bounds.IsEmpty() {
		return Rect{}, false
	}
	return g.bounds.TransformBounds(transform), true
}
