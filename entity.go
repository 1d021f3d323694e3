package blur

// BlendMode selects how an entity's content combines with what is already
// in the target.
type BlendMode uint8

const (
	// BlendSourceOver composites the source over the destination using
	// premultiplied alpha. This is the default for filter results.
	BlendSourceOver BlendMode = iota

	// BlendSource replaces the destination with the source.
	BlendSource
)

// ClipOperation selects how a clip geometry combines with the region an
// entity may draw into.
type ClipOperation uint8

const (
	// ClipIntersect restricts drawing to inside the geometry.
	ClipIntersect ClipOperation = iota

	// ClipDifference restricts drawing to outside the geometry.
	ClipDifference
)

// Contents is what an entity draws. Implementations are immutable once
// constructed; per-render state (ambient transform, clip depth) arrives
// through the entity.
type Contents interface {
	// Render records the contents' draws for entity into pass.
	Render(renderer Renderer, entity *Entity, pass RenderPass) bool

	// Coverage returns the bounds within which the contents can produce
	// non-transparent output for entity, or ok=false if nothing is
	// drawn.
	Coverage(entity *Entity) (Rect, bool)
}

// Entity is a drawable element: contents positioned by a transform at a
// clip depth. Entities are plain values; Clone copies the positioning
// while sharing the immutable contents.
type Entity struct {
	Transform Matrix
	ClipDepth uint32
	BlendMode BlendMode
	Contents  Contents
}

// NewEntity creates an entity with an identity transform and no contents.
func NewEntity() Entity {
	return Entity{Transform: Identity()}
}

// EntityFromSnapshot creates an entity that draws the snapshot's texture
// at the snapshot's transform.
func EntityFromSnapshot(snapshot Snapshot, blend BlendMode) Entity {
	return Entity{
		Transform: snapshot.Transform,
		BlendMode: blend,
		Contents:  &snapshotContents{snapshot: snapshot},
	}
}

// Clone returns a copy of the entity. Contents are shared; they are
// immutable.
func (e Entity) Clone() Entity {
	return e
}

// Render records the entity's draws into pass.
func (e *Entity) Render(renderer Renderer, pass RenderPass) bool {
	if e.Contents == nil {
		return true
	}
	return e.Contents.Render(renderer, e, pass)
}

// Coverage returns the bounds within which the entity can produce
// non-transparent output under its current transform.
func (e *Entity) Coverage() (Rect, bool) {
	if e.Contents == nil {
		return Rect{}, false
	}
	return e.Contents.Coverage(e)
}

// snapshotContents draws a captured texture. The snapshot's own transform
// is already folded into the owning entity's transform by
// EntityFromSnapshot, so rendering uses the entity transform directly.
type snapshotContents struct {
	snapshot Snapshot
}

func (c *snapshotContents) Render(renderer Renderer, entity *Entity, pass RenderPass) bool {
	err := pass.DrawSnapshot(SnapshotDraw{
		Snapshot:  c.snapshot,
		Transform: entity.Transform,
		BlendMode: entity.BlendMode,
		ClipDepth: entity.ClipDepth,
	})
	return err == nil
}

func (c *snapshotContents) Coverage(entity *Entity) (Rect, bool) {
	if c.snapshot.Texture == nil {
		return Rect{}, false
	}
	return RectFromISize(c.snapshot.Texture.Size()).TransformBounds(entity.Transform), true
}

// clipContents restricts later draws at the same clip depth to the region
// defined by a geometry and a clip operation. It draws nothing itself and
// reports no coverage: a clip never expands what its siblings can draw.
type clipContents struct {
	op       ClipOperation
	geometry Geometry
}

// NewClipContents creates contents that record a clip region when
// rendered.
func NewClipContents(op ClipOperation, geometry Geometry) Contents {
	return &clipContents{op: op, geometry: geometry}
}

func (c *clipContents) Render(renderer Renderer, entity *Entity, pass RenderPass) bool {
	err := pass.RecordClip(ClipDraw{
		Op:        c.op,
		Geometry:  c.geometry,
		Transform: entity.Transform,
		ClipDepth: entity.ClipDepth,
	})
	return err == nil
}

func (c *clipContents) Coverage(entity *Entity) (Rect, bool) {
	return Rect{}, false
}

// anonymousContents adapts a pair of closures into Contents. The closures
// capture owned clones of composed sub-entities and their relative
// transforms, and are re-evaluated against whatever ambient transform the
// caller supplies at render time, so the composed entity can be replayed
// at different places in a scene graph.
type anonymousContents struct {
	render   func(renderer Renderer, entity *Entity, pass RenderPass) bool
	coverage func(entity *Entity) (Rect, bool)
}

// AnonymousContents creates contents from render and coverage closures.
func AnonymousContents(
	render func(renderer Renderer, entity *Entity, pass RenderPass) bool,
	coverage func(entity *Entity) (Rect, bool),
) Contents {
	return &anonymousContents{render: render, coverage: coverage}
}

func (c *anonymousContents) Render(renderer Renderer, entity *Entity, pass RenderPass) bool {
	return c.render(renderer, entity, pass)
}

func (c *anonymousContents) Coverage(entity *Entity) (Rect, bool) {
	return c.coverage(entity)
}
