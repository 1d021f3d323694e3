package blur

import (
	"math"
	"testing"
)

func pointsClose(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestMatrix_TransformPoint(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		p      Point
		expect Point
	}{
		{"identity", Identity(), P(3, 4), P(3, 4)},
		{"translate", Translate(10, -5), P(3, 4), P(13, -1)},
		{"scale", Scale(2, 3), P(3, 4), P(6, 12)},
		{"rotate quarter", Rotate(math.Pi / 2), P(1, 0), P(0, 1)},
		{"scale then translate", Translate(1, 1).Multiply(Scale(2, 2)), P(3, 4), P(7, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !pointsClose(got, tt.expect, 1e-12) {
				t.Errorf("%+v.TransformPoint(%v) = %v, want %v", tt.m, tt.p, got, tt.expect)
			}
		})
	}
}

func TestMatrix_Multiply_Order(t *testing.T) {
	// Translate * Scale applies the scale first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(P(1, 1))
	want := P(12, 2)
	if !pointsClose(got, want, 1e-12) {
		t.Errorf("Translate*Scale at (1,1) = %v, want %v", got, want)
	}
}

func TestMatrix_Basis(t *testing.T) {
	m := Translate(7, 9).Multiply(Scale(2, 3))
	b := m.Basis()
	if b.C != 0 || b.F != 0 {
		t.Errorf("Basis() kept translation: %+v", b)
	}
	if got := b.TransformVec(V2(1, 1)); got != V2(2, 3) {
		t.Errorf("Basis().TransformVec(1,1) = %v, want (2,3)", got)
	}
}

func TestMatrix_Invert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(3, -8)},
		{"scale", Scale(2, 0.5)},
		{"rotate", Rotate(1.1)},
		{"composite", Translate(5, 6).Multiply(Rotate(0.3)).Multiply(Scale(2, 4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := P(3.5, -2)
			back := tt.m.Invert().TransformPoint(tt.m.TransformPoint(p))
			if !pointsClose(back, p, 1e-9) {
				t.Errorf("inverse round trip = %v, want %v", back, p)
			}
		})
	}
}

func TestMatrix_Invert_Singular(t *testing.T) {
	if got := Scale(0, 0).Invert(); got != Identity() {
		t.Errorf("Invert of singular matrix = %+v, want identity", got)
	}
}

func TestMatrix_IsTranslationScaleOnly(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		expect bool
	}{
		{"identity", Identity(), true},
		{"translate", Translate(5, 5), true},
		{"scale", Scale(2, 3), true},
		{"both", Translate(1, 2).Multiply(Scale(4, 4)), true},
		{"rotation", Rotate(0.1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslationScaleOnly(); got != tt.expect {
				t.Errorf("IsTranslationScaleOnly() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestMatrix_ExtractScale(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		expect Vec2
	}{
		{"identity", Identity(), V2(1, 1)},
		{"plain scale", Scale(2, 3), V2(2, 3)},
		{"negative scale", Scale(-2, 3), V2(2, 3)},
		{"translation ignored", Translate(100, 100).Multiply(Scale(2, 3)), V2(2, 3)},
		{"rotation preserves lengths", Rotate(math.Pi / 3).Multiply(Scale(5, 5)), V2(5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.ExtractScale()
			if math.Abs(got.X-tt.expect.X) > 1e-9 || math.Abs(got.Y-tt.expect.Y) > 1e-9 {
				t.Errorf("ExtractScale() = %v, want %v", got, tt.expect)
			}
		})
	}
}
