package blur

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// errSnapshotRender reports a failed entity render during snapshot capture.
var errSnapshotRender = errors.New("blur: snapshot render failed")

// TextureInput is a FilterInput backed by an already rendered texture. It
// is the common input for blurring a captured layer: the texture is
// returned as-is, placed by the input's transform composed with the
// entity's.
type TextureInput struct {
	texture   Texture
	transform Matrix
}

// NewTextureInput creates a filter input reading from tex, placed by
// transform in the filtered entity's space.
func NewTextureInput(tex Texture, transform Matrix) *TextureInput {
	return &TextureInput{texture: tex, transform: transform}
}

// GetSnapshot returns the backing texture directly; no rendering happens.
// The mip count request is ignored since the texture already exists.
func (t *TextureInput) GetSnapshot(label string, renderer Renderer, entity *Entity, coverageLimit *Rect, mipCount int) (Snapshot, bool) {
	if t.texture == nil || t.texture.Size().IsEmpty() {
		return Snapshot{}, false
	}
	return Snapshot{
		Texture:   t.texture,
		Transform: entity.Transform.Multiply(t.transform),
		Sampler:   MakeSamplerDescriptor(gputypes.FilterModeLinear, gputypes.AddressModeClampToEdge),
		Opacity:   1,
	}, true
}

// Coverage returns the texture bounds under the composed transform.
func (t *TextureInput) Coverage(entity *Entity) (Rect, bool) {
	if t.texture == nil {
		return Rect{}, false
	}
	bounds := RectFromISize(t.texture.Size())
	return bounds.TransformBounds(entity.Transform.Multiply(t.transform)), true
}

// LocalTransform returns the input's own placement transform.
func (t *TextureInput) LocalTransform(entity *Entity) Matrix {
	return t.transform
}

// EntityInput is a FilterInput that captures another entity by rendering
// it into a fresh target on demand. Each GetSnapshot call renders and
// submits its own command buffer.
type EntityInput struct {
	source Entity
}

// NewEntityInput creates a filter input that snapshots source when asked.
func NewEntityInput(source Entity) *EntityInput {
	return &EntityInput{source: source}
}

// GetSnapshot renders the source entity into a new texture sized to its
// coverage, optionally restricted by coverageLimit.
func (e *EntityInput) GetSnapshot(label string, renderer Renderer, entity *Entity, coverageLimit *Rect, mipCount int) (Snapshot, bool) {
	src := e.source.Clone()
	src.Transform = entity.Transform.Multiply(e.source.Transform)
	bounds, ok := src.Coverage()
	if !ok {
		return Snapshot{}, false
	}
	if coverageLimit != nil {
		bounds, ok = bounds.Intersect(*coverageLimit)
		if !ok {
			return Snapshot{}, false
		}
	}
	size := ISizeRound(bounds.Size())
	if size.IsEmpty() {
		return Snapshot{}, false
	}

	cmd, err := renderer.CreateCommandBuffer()
	if err != nil {
		return Snapshot{}, false
	}
	target, err := renderer.MakeSubpass(label, size, cmd, func(pass RenderPass) error {
		positioned := src.Clone()
		positioned.Transform = TranslateVec(Vec2{X: -bounds.Min.X, Y: -bounds.Min.Y}).
			Multiply(src.Transform)
		if !positioned.Render(renderer, pass) {
			return errSnapshotRender
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, false
	}
	if !renderer.Submit(cmd) {
		return Snapshot{}, false
	}
	return Snapshot{
		Texture:   target.Texture(),
		Transform: Translate(bounds.Min.X, bounds.Min.Y),
		Sampler:   MakeSamplerDescriptor(gputypes.FilterModeLinear, gputypes.AddressModeClampToEdge),
		Opacity:   1,
	}, true
}

// Coverage returns the source entity's bounds under the composed
// transform.
func (e *EntityInput) Coverage(entity *Entity) (Rect, bool) {
	src := e.source.Clone()
	src.Transform = entity.Transform.Multiply(e.source.Transform)
	return src.Coverage()
}

// LocalTransform returns the source entity's own transform.
func (e *EntityInput) LocalTransform(entity *Entity) Matrix {
	return e.source.Transform
}
