package blur

import (
	"errors"
	"math"

	"github.com/gogpu/gputypes"
)

// RequiredMipCount is the number of mip levels a filter input snapshot
// should carry. Downsampling without mips shimmers under animation.
const RequiredMipCount = 4

// ehCloseEnough is the sigma below which a blur pass is a no-op.
const ehCloseEnough = 1e-3

// errKernelOverflow reports a compressed kernel exceeding the shader's
// sample array. This cannot happen for sigmas within MaxSigma; it guards
// the shader against silent buffer overruns if the math ever regresses.
var errKernelOverflow = errors.New("blur: kernel sample count exceeds shader capacity")

// Filter is a two-axis Gaussian blur. A Filter is immutable and safe to
// reuse across frames; every invocation computes its pass structure
// fresh.
type Filter struct {
	sigma    Vec2
	tileMode TileMode
	style    BlurStyle
	mask     Geometry
}

// NewFilter creates a Gaussian blur filter with the given per-axis sigmas
// in caller units. Sigmas are unbounded on input and clamped to MaxSigma
// internally.
func NewFilter(sigmaX, sigmaY float64, opts ...Option) *Filter {
	f := &Filter{
		sigma:    Vec2{X: sigmaX, Y: sigmaY},
		tileMode: TileDecal,
	}
	for _, opt := range opts {
		opt(f)
	}
	if (f.style == StyleInner || f.style == StyleOuter) && f.mask == nil {
		Logger().Warn("blur style requires a mask geometry, falling back to normal",
			"style", f.style.String())
		f.style = StyleNormal
	}
	return f
}

// blurInfo holds the sigma derivatives needed for rendering or coverage.
type blurInfo struct {
	// sourceSpaceScalar maps between un-rotated local space and the
	// scaled source space the input is rasterized in. The entity's
	// rotation is applied to the blur result as part of its transform.
	sourceSpaceScalar Vec2

	// scaledSigma is the sigma after entity scale, effect transform, and
	// the MaxSigma clamp.
	scaledSigma Vec2

	// blurRadius is the blur radius in source pixels per axis.
	blurRadius Vec2

	// padding is the halo size in source pixels, always >= blurRadius.
	padding Vec2

	// localPadding is the padding re-projected into un-rotated local
	// space; callers expand clip and coverage rectangles by it.
	localPadding Vec2
}

// computeBlurInfo derives the blur geometry from the entity transform, the
// effect transform, and the requested sigma. All inputs are well-formed;
// there are no failure modes.
func computeBlurInfo(entity *Entity, effectTransform Matrix, sigma Vec2) blurInfo {
	sourceSpaceScalar := entity.Transform.Basis().ExtractScale()

	scaledSigma := effectTransform.Basis().
		Multiply(ScaleVec(sourceSpaceScalar)).
		TransformVec(Vec2{X: ScaleSigma(sigma.X), Y: ScaleSigma(sigma.Y)}).
		Abs().
		Clamp(0, MaxSigma)
	blurRadius := Vec2{X: BlurRadius(scaledSigma.X), Y: BlurRadius(scaledSigma.Y)}
	padding := blurRadius.Ceil()
	localPadding := ScaleVec(sourceSpaceScalar).TransformVec(padding).Abs()
	return blurInfo{
		sourceSpaceScalar: sourceSpaceScalar,
		scaledSigma:       scaledSigma,
		blurRadius:        blurRadius,
		padding:           padding,
		localPadding:      localPadding,
	}
}

// getSnapshot performs FilterInput.GetSnapshot with backend-aware mip
// selection. Insufficient mips are a quality defect, not a failure: they
// are surfaced as a warning log only.
func getSnapshot(input FilterInput, renderer Renderer, entity *Entity, coverageLimit *Rect) (Snapshot, bool) {
	mipCount := RequiredMipCount
	if renderer.BackendType() == BackendGLES {
		// GLES backends cannot generate mipmaps for snapshots.
		mipCount = 1
	}

	snapshot, ok := input.GetSnapshot("GaussianBlur", renderer, entity, coverageLimit, mipCount)
	if !ok {
		return Snapshot{}, false
	}

	// Without mips the downsample step shimmers.
	if snapshot.Texture != nil && snapshot.Texture.MipCount() <= 1 {
		Logger().Warn("applying gaussian blur without mipmap")
	}
	return snapshot, true
}

// downsamplePassArgs holds the computed configuration of the downsample
// pass.
type downsamplePassArgs struct {
	// subpassSize is the integer target size after rounding.
	subpassSize ISize

	// uvs maps the target's corners to the padded source region in
	// normalized texture coordinates. This effectively chops a region
	// out of the input.
	uvs Quad

	// effectiveScalar is the achieved downsample ratio. It differs from
	// the desired ratio because subpassSize is rounded to integers.
	effectiveScalar Vec2
}

// computeDownsamplePassArgs sizes the downsample target. The source rect
// is expanded by the halo padding so the blur never samples garbage at the
// edges; the expansion shows up as a transparent gutter in the output.
func computeDownsamplePassArgs(scaledSigma, padding Vec2, inputSize ISize,
	input FilterInput, snapshotEntity *Entity) downsamplePassArgs {
	desiredScalar := math.Min(DownsampleScale(scaledSigma.X), DownsampleScale(scaledSigma.Y))
	downsampleScalar := Vec2{X: desiredScalar, Y: desiredScalar}
	sourceRectPadded := RectFromISize(inputSize).Expand(padding)
	downsampledSize := sourceRectPadded.Size().MulVec(downsampleScalar)
	subpassSize := ISizeRound(downsampledSize)
	effectiveScalar := subpassSize.Vec().DivVec(sourceRectPadded.Size())

	uvs := calculateUVs(input, snapshotEntity, sourceRectPadded, inputSize)
	return downsamplePassArgs{
		subpassSize:     subpassSize,
		uvs:             uvs,
		effectiveScalar: effectiveScalar,
	}
}

// calculateUVs maps sourceRect, expressed in the input's local space, to
// normalized texture coordinates.
func calculateUVs(input FilterInput, entity *Entity, sourceRect Rect, textureSize ISize) Quad {
	inputTransform := input.LocalTransform(entity)
	coverageQuad := sourceRect.Corners().Transform(inputTransform)
	uvTransform := Scale(1/float64(textureSize.Width), 1/float64(textureSize.Height))
	return coverageQuad.Transform(uvTransform)
}

// makeDownsampleSubpass renders the scaled-down input, adding the
// transparent gutter required for the blur halo.
func makeDownsampleSubpass(renderer Renderer, cmd CommandBuffer, inputTexture Texture,
	sampler SamplerDescriptor, args downsamplePassArgs, tileMode TileMode) (RenderTarget, error) {
	return renderer.MakeSubpass("Gaussian blur downsample", args.subpassSize, cmd,
		func(pass RenderPass) error {
			desc := sampler
			setTileMode(&desc, renderer, tileMode)
			desc.MinFilter = gputypes.FilterModeLinear
			desc.MagFilter = gputypes.FilterModeLinear
			return pass.DrawTexture(TextureDraw{
				Texture:  inputTexture,
				UVs:      args.uvs,
				Sampler:  desc,
				TileMode: tileMode,
				Alpha:    1,
			})
		})
}

// makeBlurSubpass applies the kernel along one axis. A near-zero sigma
// makes the pass a no-op: the input target is returned unchanged instead
// of issuing a degenerate draw. When destination is non-nil the pass
// renders into it (ping-pong reuse); otherwise a fresh target of the
// input's size is allocated.
func makeBlurSubpass(renderer Renderer, cmd CommandBuffer, inputPass RenderTarget,
	sampler SamplerDescriptor, tileMode TileMode, params BlurParameters,
	destination RenderTarget, blurUVs Quad) (RenderTarget, error) {
	if params.Sigma < ehCloseEnough {
		return inputPass, nil
	}

	inputTexture := inputPass.Texture()
	draw := func(pass RenderPass) error {
		desc := sampler
		desc.MinFilter = gputypes.FilterModeLinear
		desc.MagFilter = gputypes.FilterModeLinear
		kernel := LerpHackKernelSamples(GenerateKernelSamples(params))
		if kernel.Count > MaxShaderKernelSamples {
			return errKernelOverflow
		}
		return pass.DrawBlur(BlurDraw{
			Texture:  inputTexture,
			UVs:      blurUVs,
			Sampler:  desc,
			TileMode: tileMode,
			Kernel:   kernel,
		})
	}

	if destination != nil {
		return renderer.MakeSubpassInto("Gaussian blur filter", destination, cmd, draw)
	}
	return renderer.MakeSubpass("Gaussian blur filter", inputTexture.Size(), cmd, draw)
}

// makeReferenceUVs returns rect relative to reference, scaled so that
// rect == reference maps to the unit rectangle.
func makeReferenceUVs(reference, rect Rect) Rect {
	result := RectXYWH(rect.Min.X-reference.Min.X, rect.Min.Y-reference.Min.Y,
		rect.Width(), rect.Height())
	return result.Scale(reference.Size().Recip())
}

// calculateBlurUVs restricts the blur passes to the region where blurring
// actually happens, rather than the whole texture, when a coverage hint is
// available.
func calculateBlurUVs(snapshot Snapshot, sourceExpandedCoverageHint *Rect) Quad {
	blurUVs := UnitQuad()
	snapshotCoverage, ok := snapshot.Coverage()
	if sourceExpandedCoverageHint == nil || !ok {
		return blurUVs
	}
	uvs, ok := makeReferenceUVs(snapshotCoverage, *sourceExpandedCoverageHint).
		Intersect(RectFromSize(Vec2{X: 1, Y: 1}))
	if ok {
		blurUVs = uvs.Corners()
	}
	return blurUVs
}

// GetFilterSourceCoverage returns how much source content must be captured
// so the blur can fill outputLimit: the output region expanded by the blur
// radii under the effect transform.
func (f *Filter) GetFilterSourceCoverage(effectTransform Matrix, outputLimit Rect) (Rect, bool) {
	scaledSigma := Vec2{X: ScaleSigma(f.sigma.X), Y: ScaleSigma(f.sigma.Y)}
	blurRadius := Vec2{X: BlurRadius(scaledSigma.X), Y: BlurRadius(scaledSigma.Y)}
	blurRadii := effectTransform.Basis().TransformVec(blurRadius).Abs()
	return outputLimit.Expand(blurRadii), true
}

// GetFilterCoverage returns the bounding box the filter output can occupy:
// the input coverage expanded by the blur halo in un-rotated local space.
// No GPU work is issued.
func (f *Filter) GetFilterCoverage(inputs []FilterInput, entity *Entity, effectTransform Matrix) (Rect, bool) {
	if len(inputs) == 0 {
		return Rect{}, false
	}
	inputCoverage, ok := inputs[0].Coverage(entity)
	if !ok {
		return Rect{}, false
	}
	info := computeBlurInfo(entity, effectTransform, f.sigma)
	return inputCoverage.Expand(info.localPadding), true
}

// RenderFilter runs the full blur pipeline:
//
//  1. Snapshot the filter input.
//  2. Downsample pass. This also inserts the gutter around the input
//     snapshot since the blur can render outside the snapshot's bounds.
//  3. 1-D vertical blur pass.
//  4. 1-D horizontal blur pass, ping-ponging into the downsample target
//     when sizes match.
//  5. Apply the blur style, which may mask the output or draw the
//     original snapshot over it.
//
// All passes are encoded into a single command buffer submitted once at
// the end. Any internal failure returns ok=false with no partial result;
// the coverage argument is accepted for interface parity with other
// filters and is unused here.
func (f *Filter) RenderFilter(inputs []FilterInput, renderer Renderer, entity *Entity,
	effectTransform Matrix, coverage Rect, coverageHint *Rect) (Entity, bool) {
	_ = coverage
	if len(inputs) == 0 {
		return Entity{}, false
	}

	info := computeBlurInfo(entity, effectTransform, f.sigma)

	// Apply as much of the desired padding as possible from the source.
	// The input may ignore the request, so the downsample pass accounts
	// for it again with a transparent gutter.
	var expandedCoverageHint *Rect
	if coverageHint != nil {
		expanded := coverageHint.Expand(info.localPadding)
		expandedCoverageHint = &expanded
	}

	snapshotEntity := entity.Clone()
	snapshotEntity.Transform = ScaleVec(info.sourceSpaceScalar)

	var sourceExpandedCoverageHint *Rect
	if expandedCoverageHint != nil {
		source := expandedCoverageHint.TransformBounds(
			ScaleVec(info.sourceSpaceScalar).Multiply(entity.Transform.Invert()))
		sourceExpandedCoverageHint = &source
	}

	inputSnapshot, ok := getSnapshot(inputs[0], renderer, &snapshotEntity, sourceExpandedCoverageHint)
	if !ok {
		return Entity{}, false
	}

	if info.scaledSigma.X < ehCloseEnough && info.scaledSigma.Y < ehCloseEnough {
		// No blur to render: return the snapshot repositioned.
		result := EntityFromSnapshot(inputSnapshot, entity.BlendMode)
		result.Transform = entity.Transform.
			Multiply(ScaleVec(info.sourceSpaceScalar.Recip())).
			Multiply(inputSnapshot.Transform)
		return result, true
	}

	cmd, err := renderer.CreateCommandBuffer()
	if err != nil {
		return Entity{}, false
	}

	passArgs := computeDownsamplePassArgs(info.scaledSigma, info.padding,
		inputSnapshot.Texture.Size(), inputs[0], &snapshotEntity)

	pass1, err := makeDownsampleSubpass(renderer, cmd, inputSnapshot.Texture,
		inputSnapshot.Sampler, passArgs, f.tileMode)
	if err != nil {
		return Entity{}, false
	}

	pass1PixelSize := pass1.Texture().Size().Vec().Recip()
	blurUVs := calculateBlurUVs(inputSnapshot, sourceExpandedCoverageHint)

	pass2, err := makeBlurSubpass(renderer, cmd, pass1, inputSnapshot.Sampler, f.tileMode,
		BlurParameters{
			UVOffset: Vec2{X: 0, Y: pass1PixelSize.Y},
			Sigma:    info.scaledSigma.Y * passArgs.effectiveScalar.Y,
			Radius:   scaledBlurRadius(info.blurRadius.Y, passArgs.effectiveScalar.Y),
			StepSize: 1,
		}, nil, blurUVs)
	if err != nil {
		return Entity{}, false
	}

	// Only ping-pong if the first blur pass actually created a target.
	var pass3Destination RenderTarget
	if pass2.Texture() != pass1.Texture() {
		pass3Destination = pass1
	}

	pass3, err := makeBlurSubpass(renderer, cmd, pass2, inputSnapshot.Sampler, f.tileMode,
		BlurParameters{
			UVOffset: Vec2{X: pass1PixelSize.X, Y: 0},
			Sigma:    info.scaledSigma.X * passArgs.effectiveScalar.X,
			Radius:   scaledBlurRadius(info.blurRadius.X, passArgs.effectiveScalar.X),
			StepSize: 1,
		}, pass3Destination, blurUVs)
	if err != nil {
		return Entity{}, false
	}

	if !renderer.Submit(cmd) {
		return Entity{}, false
	}

	// Ping-pong requires every pass output to have the same size.
	if pass1.Size() != pass2.Size() || pass2.Size() != pass3.Size() {
		Logger().Debug("blur pass target sizes diverged",
			"downsample", pass1.Size(), "vertical", pass2.Size(), "horizontal", pass3.Size())
	}

	sampler := MakeSamplerDescriptor(gputypes.FilterModeLinear, gputypes.AddressModeClampToEdge)
	blurOutputEntity := EntityFromSnapshot(Snapshot{
		Texture: pass3.Texture(),
		Transform: entity.Transform.
			Multiply(ScaleVec(info.sourceSpaceScalar.Recip())).
			Multiply(inputSnapshot.Transform).
			Multiply(TranslateVec(info.padding.Neg())).
			Multiply(ScaleVec(passArgs.effectiveScalar.Recip())),
		Sampler: sampler,
		Opacity: inputSnapshot.Opacity,
	}, entity.BlendMode)

	return applyBlurStyle(f.style, entity, inputSnapshot, blurOutputEntity,
		f.mask, info.sourceSpaceScalar), true
}
