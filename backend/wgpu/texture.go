package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blur"
)

// targetFormat is the texture format of all blur pass targets.
const targetFormat = gputypes.TextureFormatRGBA8Unorm

// Texture is a GPU texture with its default view.
type Texture struct {
	tex  hal.Texture
	view hal.TextureView
	size blur.ISize
	mips int
}

// WrapTexture adopts an externally created hal texture and view, e.g. a
// layer snapshot rendered by the host engine. The wrapper does not take
// ownership; the caller remains responsible for destruction.
func WrapTexture(tex hal.Texture, view hal.TextureView, size blur.ISize, mipCount int) *Texture {
	return &Texture{tex: tex, view: view, size: size, mips: mipCount}
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() blur.ISize {
	return t.size
}

// MipCount returns the number of mip levels.
func (t *Texture) MipCount() int {
	return t.mips
}

// View returns the texture's sampling view.
func (t *Texture) View() hal.TextureView {
	return t.view
}

// Handle returns the underlying hal texture.
func (t *Texture) Handle() hal.Texture {
	return t.tex
}

// createTargetTexture allocates a render target texture with a view.
func createTargetTexture(device hal.Device, label string, size blur.ISize) (*Texture, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(size.Width),
			Height:             uint32(size.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return &Texture{tex: tex, view: view, size: size, mips: 1}, nil
}

// renderTarget owns a pass output texture.
type renderTarget struct {
	tex *Texture
}

func (r *renderTarget) Texture() blur.Texture { return r.tex }
func (r *renderTarget) Size() blur.ISize      { return r.tex.size }
