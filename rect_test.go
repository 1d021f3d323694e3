package blur

import (
	"math"
	"testing"
)

func rectsClose(a, b Rect, eps float64) bool {
	return pointsClose(a.Min, b.Min, eps) && pointsClose(a.Max, b.Max, eps)
}

func TestNewRect_Normalizes(t *testing.T) {
	got := NewRect(P(5, 8), P(1, 2))
	want := Rect{Min: P(1, 2), Max: P(5, 8)}
	if got != want {
		t.Errorf("NewRect = %+v, want %+v", got, want)
	}
}

func TestRect_Intersect(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Rect
		expect  Rect
		overlap bool
	}{
		{
			"overlapping",
			RectXYWH(0, 0, 10, 10), RectXYWH(5, 5, 10, 10),
			RectXYWH(5, 5, 5, 5), true,
		},
		{
			"contained",
			RectXYWH(0, 0, 10, 10), RectXYWH(2, 2, 3, 3),
			RectXYWH(2, 2, 3, 3), true,
		},
		{
			"disjoint",
			RectXYWH(0, 0, 5, 5), RectXYWH(10, 10, 5, 5),
			Rect{}, false,
		},
		{
			"touching edges",
			RectXYWH(0, 0, 5, 5), RectXYWH(5, 0, 5, 5),
			Rect{}, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.overlap || got != tt.expect {
				t.Errorf("Intersect = %+v, %v; want %+v, %v", got, ok, tt.expect, tt.overlap)
			}
		})
	}
}

func TestRect_Expand(t *testing.T) {
	got := RectXYWH(10, 10, 20, 20).Expand(V2(3, 5))
	want := RectXYWH(7, 5, 26, 30)
	if got != want {
		t.Errorf("Expand = %+v, want %+v", got, want)
	}
}

func TestRect_TransformBounds_Rotation(t *testing.T) {
	// A unit square rotated 45 degrees has a bounding box of width sqrt(2)
	// centered on the rotated square.
	r := RectXYWH(-0.5, -0.5, 1, 1)
	got := r.TransformBounds(Rotate(math.Pi / 4))
	h := math.Sqrt2 / 2
	want := NewRect(P(-h, -h), P(h, h))
	if !rectsClose(got, want, 1e-12) {
		t.Errorf("TransformBounds = %+v, want %+v", got, want)
	}
}

func TestRect_Corners_StripOrder(t *testing.T) {
	q := RectXYWH(1, 2, 3, 4).Corners()
	want := Quad{P(1, 2), P(4, 2), P(1, 6), P(4, 6)}
	if q != want {
		t.Errorf("Corners = %+v, want %+v", q, want)
	}
}

func TestRect_Scale(t *testing.T) {
	got := RectXYWH(2, 2, 4, 4).Scale(V2(0.5, 2))
	want := RectXYWH(1, 4, 2, 8)
	if got != want {
		t.Errorf("Scale = %+v, want %+v", got, want)
	}
}

func TestISizeRound(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec2
		expect ISize
	}{
		{"exact", V2(4, 8), ISize{Width: 4, Height: 8}},
		{"rounds up", V2(4.6, 7.5), ISize{Width: 5, Height: 8}},
		{"rounds down", V2(4.4, 7.2), ISize{Width: 4, Height: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISizeRound(tt.v); got != tt.expect {
				t.Errorf("ISizeRound(%v) = %+v, want %+v", tt.v, got, tt.expect)
			}
		})
	}
}
