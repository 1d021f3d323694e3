package blur

import "math"

// MaxSigma is the largest usable Gaussian standard deviation. Requested
// sigmas are clamped here, limiting the kernel footprint to roughly
// 1000x1000 source pixels.
const MaxSigma = 500.0

// kernelRadiusPerSigma converts between a Gaussian standard deviation and
// the pixel radius at which remaining kernel energy is visually
// negligible.
const kernelRadiusPerSigma = 1.73205080757

// eighthDownsampleKernelWidthMax bounds the effective kernel width under
// which a 1/8th downsample is preferred over 1/16th. The constant was
// picked by inspecting the highest sigma values that downscale to 1/16th
// for shimmer.
const eighthDownsampleKernelWidthMax = 41

// ScaleSigma normalizes a requested blur sigma against the MaxSigma cap.
// A quadratic correction compensates for the mismatch between the nominal
// sigma and the reference blur appearance at large sigma: the correction
// factor is 1 at sigma 0 and roughly 0.15 at sigma 500, with its minimum
// placed at the cap.
func ScaleSigma(sigma float64) float64 {
	clamped := math.Min(math.Max(sigma, 0), MaxSigma)
	const (
		a = 3.4e-06
		b = -3.4e-3
		c = 1.0
	)
	scalar := c + b*clamped + a*clamped*clamped
	return clamped * scalar
}

// BlurRadius maps a sigma to the pixel radius of the blur. The radius
// grows proportionally with sigma; sigmas at or below one half pixel
// produce no visible spread and map to zero.
func BlurRadius(sigma float64) float64 {
	if sigma <= 0.5 {
		return 0
	}
	return (sigma - 0.5) * kernelRadiusPerSigma
}

// scaledBlurRadius converts a source-space blur radius into the radius at
// the given downsample scale, rounded to whole pixels.
func scaledBlurRadius(radius, scale float64) int {
	return int(math.Round(radius * scale))
}

// DownsampleScale chooses the power-of-two downsample factor for the given
// sigma. Small blurs (sigma <= 4) stay at full resolution for quality.
// Larger blurs scale down by the nearest power of two to 4/sigma, never
// below 1/16th to preserve signal. Candidates below 1/8th are promoted
// back to the next finer scale when the effective kernel width at that
// scale stays under eighthDownsampleKernelWidthMax, avoiding shimmer.
func DownsampleScale(sigma float64) float64 {
	if sigma <= 4 {
		return 1.0
	}
	raw := 4.0 / sigma
	// Round to the nearest 1/(2^n) to get the best quality down scaling.
	exponent := math.Round(math.Log2(raw))
	exponent = math.Max(-4, exponent)
	rounded := math.Pow(2, exponent)
	result := rounded
	if rounded < 0.125 {
		roundedPlus := math.Pow(2, exponent+1)
		radius := BlurRadius(sigma)
		kernelSizePlus := scaledBlurRadius(radius, roundedPlus)*2 + 1
		if kernelSizePlus <= eighthDownsampleKernelWidthMax {
			result = roundedPlus
		}
	}
	return result
}
