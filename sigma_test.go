package blur

import (
	"math"
	"testing"
)

func TestScaleSigma(t *testing.T) {
	tests := []struct {
		name   string
		sigma  float64
		expect float64
	}{
		{"zero", 0, 0},
		{"negative clamps to zero", -3, 0},
		{"one", 1, 1 * (1 - 3.4e-3 + 3.4e-6)},
		{"ten", 10, 10 * (1 - 3.4e-2 + 3.4e-4)},
		{"cap", 500, 500 * (1 - 1.7 + 0.85)},
		{"above cap clamps", 900, 500 * (1 - 1.7 + 0.85)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleSigma(tt.sigma)
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("ScaleSigma(%v) = %v, want %v", tt.sigma, got, tt.expect)
			}
		})
	}
}

func TestScaleSigma_IncreasingForModerateSigmas(t *testing.T) {
	prev := ScaleSigma(0)
	for sigma := 1.0; sigma <= 100; sigma++ {
		got := ScaleSigma(sigma)
		if got <= prev {
			t.Fatalf("ScaleSigma not increasing at sigma=%v: %v <= %v", sigma, got, prev)
		}
		prev = got
	}
}

func TestBlurRadius(t *testing.T) {
	tests := []struct {
		name   string
		sigma  float64
		expect float64
	}{
		{"zero", 0, 0},
		{"below half pixel", 0.4, 0},
		{"exactly half pixel", 0.5, 0},
		{"one", 1, 0.5 * kernelRadiusPerSigma},
		{"four", 4, 3.5 * kernelRadiusPerSigma},
		{"hundred", 100, 99.5 * kernelRadiusPerSigma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlurRadius(tt.sigma)
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("BlurRadius(%v) = %v, want %v", tt.sigma, got, tt.expect)
			}
		})
	}
}

func TestDownsampleScale(t *testing.T) {
	tests := []struct {
		name   string
		sigma  float64
		expect float64
	}{
		{"tiny blur stays full resolution", 0.5, 1},
		{"boundary sigma stays full resolution", 4, 1},
		{"sigma 6 halves", 6, 0.5},
		{"sigma 8 halves", 8, 0.5},
		{"sigma 16 quarters", 16, 0.25},
		{"sigma 32 eighths", 32, 0.125},
		// At sigma 64 the raw scale is exactly 1/16th, but the kernel at
		// 1/8th still fits in the width bound, so 1/8th wins.
		{"sigma 64 promotes to eighth", 64, 0.125},
		// At sigma 100 even the 1/8th kernel is too wide; stays 1/16th.
		{"sigma 100 sixteenths", 100, 0.0625},
		{"huge sigma floors at sixteenth", 500, 0.0625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DownsampleScale(tt.sigma)
			if got != tt.expect {
				t.Errorf("DownsampleScale(%v) = %v, want %v", tt.sigma, got, tt.expect)
			}
		})
	}
}

func TestDownsampleScale_NeverBelowSixteenth(t *testing.T) {
	for sigma := 1.0; sigma <= MaxSigma; sigma += 7 {
		got := DownsampleScale(sigma)
		if got < 0.0625 || got > 1 {
			t.Fatalf("DownsampleScale(%v) = %v, want within [1/16, 1]", sigma, got)
		}
	}
}
