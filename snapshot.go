package blur

import "github.com/gogpu/gputypes"

// TileMode controls how samples outside the input texture's [0,1] UV range
// are produced.
type TileMode uint8

const (
	// TileClamp extends the edge texels outward.
	TileClamp TileMode = iota

	// TileRepeat wraps UVs, tiling the texture.
	TileRepeat

	// TileMirror wraps UVs with alternating reflection.
	TileMirror

	// TileDecal treats everything outside the texture as transparent
	// black. Only honored when the backend supports it; other backends
	// fall back to their current address mode.
	TileDecal
)

// String returns a human-readable name for the tile mode.
func (m TileMode) String() string {
	switch m {
	case TileClamp:
		return "Clamp"
	case TileRepeat:
		return "Repeat"
	case TileMirror:
		return "Mirror"
	case TileDecal:
		return "Decal"
	default:
		return "Unknown"
	}
}

// SamplerDescriptor configures texture sampling for a draw.
type SamplerDescriptor struct {
	MinFilter    gputypes.FilterMode
	MagFilter    gputypes.FilterMode
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
}

// MakeSamplerDescriptor creates a sampler descriptor with the given filter
// applied to both minification and magnification and the given address
// mode on both axes.
func MakeSamplerDescriptor(filter gputypes.FilterMode, addressMode gputypes.AddressMode) SamplerDescriptor {
	return SamplerDescriptor{
		MinFilter:    filter,
		MagFilter:    filter,
		AddressModeU: addressMode,
		AddressModeV: addressMode,
	}
}

// setTileMode applies the tile mode's address modes to the descriptor.
// TileDecal has no gputypes address mode; backends that support it resolve
// it from the draw's TileMode instead, so the descriptor is left unchanged.
func setTileMode(desc *SamplerDescriptor, renderer Renderer, mode TileMode) {
	switch mode {
	case TileDecal:
		if !renderer.SupportsDecalTileMode() {
			return
		}
	case TileClamp:
		desc.AddressModeU = gputypes.AddressModeClampToEdge
		desc.AddressModeV = gputypes.AddressModeClampToEdge
	case TileMirror:
		desc.AddressModeU = gputypes.AddressModeMirrorRepeat
		desc.AddressModeV = gputypes.AddressModeMirrorRepeat
	case TileRepeat:
		desc.AddressModeU = gputypes.AddressModeRepeat
		desc.AddressModeV = gputypes.AddressModeRepeat
	}
}

// Snapshot is a handle to a rendered texture plus its placement in the
// scene. Snapshots are produced by a FilterInput and are read-only to the
// filter.
type Snapshot struct {
	// Texture holds the rendered content.
	Texture Texture

	// Transform places the texture's pixel grid in the scene.
	Transform Matrix

	// Sampler is the sampling configuration the content was meant to be
	// drawn with.
	Sampler SamplerDescriptor

	// Opacity is the extra alpha applied when compositing the snapshot.
	Opacity float32
}

// Coverage returns the snapshot's bounds under its transform.
func (s Snapshot) Coverage() (Rect, bool) {
	if s.Texture == nil {
		return Rect{}, false
	}
	return RectFromISize(s.Texture.Size()).TransformBounds(s.Transform), true
}
