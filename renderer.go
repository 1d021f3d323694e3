package blur

// BackendType identifies the kind of graphics backend behind a Renderer.
// The filter uses it to work around backend-specific limitations.
type BackendType uint8

const (
	// BackendSoftware is a CPU rasterizer.
	BackendSoftware BackendType = iota

	// BackendWebGPU is a WebGPU/wgpu-hal device.
	BackendWebGPU

	// BackendGLES is an OpenGL ES device. GLES backends cannot generate
	// mipmaps for filter snapshots, so mip requests are forced to 1.
	BackendGLES
)

// Texture is an opaque handle to GPU-resident (or CPU-resident, for the
// software backend) image data.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() ISize

	// MipCount returns the number of mip levels the texture carries.
	MipCount() int
}

// RenderTarget is a texture that can be drawn into by a subpass.
type RenderTarget interface {
	// Texture returns the target's backing texture.
	Texture() Texture

	// Size returns the target dimensions in pixels.
	Size() ISize
}

// CommandBuffer is an opaque recording of GPU work. All passes of one
// filter invocation are encoded into a single command buffer and submitted
// once at the end.
type CommandBuffer interface{}

// SubpassFunc records draws into a freshly begun render pass. It runs to
// completion before the subpass is finalized; it must not retain the pass.
type SubpassFunc func(pass RenderPass) error

// Renderer is the GPU context collaborator: it allocates command buffers
// and render targets, runs subpasses, and submits finished work. The
// filter never encodes GPU commands itself; it sequences subpasses through
// this interface.
type Renderer interface {
	// BackendType returns the kind of backend driving this renderer.
	BackendType() BackendType

	// SupportsDecalTileMode reports whether TileDecal sampling is
	// available. Unsupported backends sample with their current address
	// mode instead.
	SupportsDecalTileMode() bool

	// CreateCommandBuffer allocates a command buffer for one filter
	// invocation. A nil error means recording may begin.
	CreateCommandBuffer() (CommandBuffer, error)

	// MakeSubpass creates a render target of the given size, begins a
	// render pass onto it cleared to transparent black, runs draw, and
	// finalizes the pass into cmd. The returned target owns the pass's
	// output texture.
	MakeSubpass(label string, size ISize, cmd CommandBuffer, draw SubpassFunc) (RenderTarget, error)

	// MakeSubpassInto is MakeSubpass rendering into an existing target
	// instead of allocating a new one. Used for ping-ponging between
	// equally sized targets.
	MakeSubpassInto(label string, target RenderTarget, cmd CommandBuffer, draw SubpassFunc) (RenderTarget, error)

	// Submit hands the recorded command buffers to the GPU queue.
	// The return value only acknowledges acceptance of the submission;
	// execution is asynchronous and never observed by the filter.
	Submit(cmds ...CommandBuffer) bool
}

// TextureDraw is a textured-quad draw into a subpass target. Positions are
// implicit: the quad always covers the full target; UVs select the source
// region, including coordinates outside [0,1] resolved per TileMode.
type TextureDraw struct {
	Texture  Texture
	UVs      Quad
	Sampler  SamplerDescriptor
	TileMode TileMode
	Alpha    float32
}

// BlurDraw is a 1-D convolution draw into a subpass target: a full-target
// quad sampling Texture once per kernel tap. Positions double as UVs so
// only the hinted region is processed.
type BlurDraw struct {
	Texture  Texture
	UVs      Quad
	Sampler  SamplerDescriptor
	TileMode TileMode
	Kernel   KernelSamples
}

// SnapshotDraw composites a snapshot into a scene pass.
type SnapshotDraw struct {
	Snapshot  Snapshot
	Transform Matrix
	BlendMode BlendMode
	ClipDepth uint32
}

// ClipDraw records a clip region into a scene pass. Entities drawn after
// it at the same clip depth are restricted to the region.
type ClipDraw struct {
	Op        ClipOperation
	Geometry  Geometry
	Transform Matrix
	ClipDepth uint32
}

// RenderPass records draws. Subpasses created by the filter use
// DrawTexture and DrawBlur; the composited result entity uses DrawSnapshot
// and RecordClip when the caller replays it into its own scene pass.
type RenderPass interface {
	DrawTexture(d TextureDraw) error
	DrawBlur(d BlurDraw) error
	DrawSnapshot(d SnapshotDraw) error
	RecordClip(d ClipDraw) error
}

// FilterInput supplies the content a filter operates on.
type FilterInput interface {
	// GetSnapshot renders the input to a texture. coverageLimit, when
	// non-nil, bounds how much content is captured; mipCount is the
	// number of mip levels the texture should carry. Returns ok=false
	// when the input has nothing to render.
	GetSnapshot(label string, renderer Renderer, entity *Entity, coverageLimit *Rect, mipCount int) (Snapshot, bool)

	// Coverage returns the input's bounds when rendered for entity.
	Coverage(entity *Entity) (Rect, bool)

	// LocalTransform returns the transform mapping the input's own
	// coordinate space into entity's space.
	LocalTransform(entity *Entity) Matrix
}

// Geometry is the mask geometry collaborator used by the inner and outer
// blur styles. The filter only needs its coverage bounds; rasterization is
// the backend's concern.
type Geometry interface {
	// Coverage returns the geometry's bounds under the transform.
	Coverage(transform Matrix) (Rect, bool)
}
