package blur

// BlurStyle selects how the blurred result is recombined with the original
// snapshot. The set of styles is fixed and dispatched exhaustively.
type BlurStyle uint8

const (
	// StyleNormal draws only the blurred result.
	StyleNormal BlurStyle = iota

	// StyleInner shows the blur only where it overlaps the mask
	// geometry.
	StyleInner

	// StyleOuter shows the blur only outside the mask geometry.
	StyleOuter

	// StyleSolid draws the blurred result, then the original snapshot on
	// top. Used when the blur acts as a halo behind opaque content.
	StyleSolid
)

// String returns a human-readable name for the blur style.
func (s BlurStyle) String() string {
	switch s {
	case StyleNormal:
		return "Normal"
	case StyleInner:
		return "Inner"
	case StyleOuter:
		return "Outer"
	case StyleSolid:
		return "Solid"
	default:
		return "Unknown"
	}
}

// applyBlurStyle wraps the blurred entity per the requested style. The
// returned entity's render and coverage are closures evaluated against the
// ambient transform and clip depth at each render call, so the result can
// be replayed at different places in a scene graph.
func applyBlurStyle(style BlurStyle, entity *Entity, snapshot Snapshot,
	blurEntity Entity, geometry Geometry, sourceSpaceScalar Vec2) Entity {
	switch style {
	case StyleInner:
		return applyClippedBlurStyle(ClipIntersect, entity, blurEntity, geometry)
	case StyleOuter:
		return applyClippedBlurStyle(ClipDifference, entity, blurEntity, geometry)
	case StyleSolid:
		return applySolidBlurStyle(entity, snapshot, blurEntity, sourceSpaceScalar)
	default:
		return blurEntity
	}
}

// applyClippedBlurStyle composes a clip entity ahead of the blur entity at
// the same clip depth. The clip restricts where the blur shows; it never
// expands coverage. For intersect clips the coverage additionally shrinks
// to the mask's bounds, since nothing outside them can be drawn.
func applyClippedBlurStyle(op ClipOperation, entity *Entity,
	blurEntity Entity, geometry Geometry) Entity {
	clipper := NewEntity()
	clipper.Contents = NewClipContents(op, geometry)
	entityTransform := entity.Transform
	blurTransform := blurEntity.Transform

	render := func(renderer Renderer, e *Entity, pass RenderPass) bool {
		result := true
		c := clipper.Clone()
		c.ClipDepth = e.ClipDepth
		c.Transform = e.Transform.Multiply(entityTransform)
		result = c.Render(renderer, pass) && result
		b := blurEntity.Clone()
		b.ClipDepth = e.ClipDepth
		b.Transform = e.Transform.Multiply(blurTransform)
		result = b.Render(renderer, pass) && result
		return result
	}
	coverage := func(e *Entity) (Rect, bool) {
		b := blurEntity.Clone()
		b.Transform = e.Transform.Multiply(blurTransform)
		bounds, ok := b.Coverage()
		if !ok {
			return Rect{}, false
		}
		if op == ClipIntersect {
			maskBounds, maskOK := geometry.Coverage(e.Transform.Multiply(entityTransform))
			if !maskOK {
				return Rect{}, false
			}
			return bounds.Intersect(maskBounds)
		}
		return bounds, true
	}

	result := NewEntity()
	result.Contents = AnonymousContents(render, coverage)
	return result
}

// applySolidBlurStyle draws the blurred entity, then composites the
// original unscaled snapshot directly on top.
func applySolidBlurStyle(entity *Entity, snapshot Snapshot,
	blurEntity Entity, sourceSpaceScalar Vec2) Entity {
	snapshotEntity := EntityFromSnapshot(snapshot, entity.BlendMode)
	blurredTransform := blurEntity.Transform
	snapshotTransform := entity.Transform.Multiply(snapshotEntity.Transform)

	render := func(renderer Renderer, e *Entity, pass RenderPass) bool {
		result := true
		b := blurEntity.Clone()
		b.ClipDepth = e.ClipDepth
		b.Transform = e.Transform.Multiply(blurredTransform)
		result = b.Render(renderer, pass) && result
		s := snapshotEntity.Clone()
		s.ClipDepth = e.ClipDepth
		s.Transform = e.Transform.
			Multiply(ScaleVec(sourceSpaceScalar.Recip())).
			Multiply(snapshotTransform)
		result = s.Render(renderer, pass) && result
		return result
	}
	coverage := func(e *Entity) (Rect, bool) {
		b := blurEntity.Clone()
		b.Transform = e.Transform.Multiply(blurredTransform)
		return b.Coverage()
	}

	result := NewEntity()
	result.Contents = AnonymousContents(render, coverage)
	return result
}
