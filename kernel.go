package blur

import "github.com/chewxy/math32"

// MaxShaderKernelSamples is the size of the kernel sample array in the
// blur fragment shader. It is a hard shader-stage constant: a compressed
// kernel must never exceed it.
const MaxShaderKernelSamples = 50

// MaxKernelSamples is the sample ceiling for generated (uncompressed)
// kernels. It is twice the shader array size because lerp-hack compression
// halves the sample count before the kernel reaches the shader.
const MaxKernelSamples = MaxShaderKernelSamples * 2

// BlurParameters configures one axis of the separable blur.
type BlurParameters struct {
	// UVOffset is the per-tap texel offset direction in normalized
	// texture coordinates. One axis is always zero.
	UVOffset Vec2

	// Sigma is the Gaussian standard deviation, already scaled by the
	// effective downsample scalar.
	Sigma float64

	// Radius is the blur radius in pixels of the downsampled target.
	Radius int

	// StepSize is the sample stride. Currently always 1.
	StepSize int
}

// KernelSample is one tap of the 1-D convolution kernel.
type KernelSample struct {
	// UVOffset is the sampling offset from the destination texel in
	// normalized texture coordinates.
	UVOffset Vec2

	// Coefficient is the tap weight. All coefficients of a kernel sum
	// to 1.
	Coefficient float32
}

// KernelSamples is a bounded sequence of kernel taps. It is a fixed
// array plus count rather than a slice because the shader-side array has a
// hard capacity.
type KernelSamples struct {
	Count   int
	Samples [MaxKernelSamples]KernelSample
}

// Sum returns the total weight of the kernel.
func (k *KernelSamples) Sum() float32 {
	var sum float32
	for _, s := range k.Samples[:k.Count] {
		sum += s.Coefficient
	}
	return sum
}

// GenerateKernelSamples builds a normalized 1-D discrete Gaussian kernel
// for one blur axis.
//
// For radius >= 3 the two extreme taps are trimmed and the sample origin
// shifts by one step; together those taps carry under 1.56% of the total
// weight, so dropping them is invisible while saving two fetches. The
// sample count is then clamped to MaxKernelSamples; taps beyond the
// ceiling are dropped, a documented precision trade-off rather than an
// error. Weights are renormalized at the end so the kernel always sums to
// exactly 1 regardless of trimming or clamping.
func GenerateKernelSamples(p BlurParameters) KernelSamples {
	var result KernelSamples
	result.Count = (2*p.Radius)/p.StepSize + 1

	offset := 0
	if p.Radius >= 3 {
		result.Count -= 2
		offset = 1
	}

	if result.Count > MaxKernelSamples {
		result.Count = MaxKernelSamples
	}

	sigma := float32(p.Sigma)
	norm := math32.Sqrt(2*math32.Pi) * sigma
	var tally float32
	for i := 0; i < result.Count; i++ {
		x := offset + i*p.StepSize - p.Radius
		fx := float32(x)
		coefficient := math32.Exp(-0.5*fx*fx/(sigma*sigma)) / norm
		result.Samples[i] = KernelSample{
			UVOffset:    p.UVOffset.Mul(float64(x)),
			Coefficient: coefficient,
		}
		tally += coefficient
	}

	// Make sure everything adds up to 1.
	for i := range result.Samples[:result.Count] {
		result.Samples[i].Coefficient /= tally
	}

	return result
}

// LerpHackKernelSamples compresses a kernel to roughly half its sample
// count by merging each adjacent pair of taps into one virtual tap placed
// at the pair's coefficient-weighted average offset, with the pair's
// summed weight. A linear-filtering sampler fetching at the merged,
// non-integer offset reconstructs the two original texel reads in
// hardware, so the compressed kernel is only valid with linear filtering
// enabled.
//
// The exact-center tap of an odd-count kernel passes through unmodified.
// An even-count kernel (only produced by clamping at MaxKernelSamples)
// leaves one unpaired tap at the tail; it is folded into the final merged
// sample so the total weight is preserved. The result has ((count-1)/2)+1
// samples and never exceeds MaxShaderKernelSamples.
func LerpHackKernelSamples(in KernelSamples) KernelSamples {
	var result KernelSamples
	result.Count = (in.Count-1)/2 + 1
	middle := result.Count / 2
	j := 0
	for i := 0; i < result.Count; i++ {
		if i == middle {
			result.Samples[i] = in.Samples[j]
			j++
			continue
		}
		result.Samples[i] = mergeSamples(in.Samples[j], in.Samples[j+1])
		j += 2
	}
	if j < in.Count {
		last := result.Count - 1
		result.Samples[last] = mergeSamples(result.Samples[last], in.Samples[j])
	}
	return result
}

// mergeSamples combines two taps into one at their coefficient-weighted
// average offset, carrying the summed weight.
func mergeSamples(left, right KernelSample) KernelSample {
	sum := left.Coefficient + right.Coefficient
	merged := left.UVOffset.Mul(float64(left.Coefficient)).
		Add(right.UVOffset.Mul(float64(right.Coefficient))).
		Mul(1 / float64(sum))
	return KernelSample{UVOffset: merged, Coefficient: sum}
}
