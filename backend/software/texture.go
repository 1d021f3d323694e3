package software

import (
	"image"

	"github.com/gogpu/blur"
)

// Texture is a CPU texture backed by an image.RGBA. Pixels are
// premultiplied, matching the GPU backends.
type Texture struct {
	img *image.RGBA
}

// NewTexture creates a texture from img. The image is referenced, not
// copied; callers must not mutate it while draws are in flight.
func NewTexture(img *image.RGBA) *Texture {
	return &Texture{img: img}
}

// newTarget allocates a transparent texture of the given size.
func newTarget(size blur.ISize) *Texture {
	return &Texture{img: image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))}
}

// Image returns the backing image.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() blur.ISize {
	b := t.img.Bounds()
	return blur.ISize{Width: b.Dx(), Height: b.Dy()}
}

// MipCount reports the full chain: CPU sampling is analytic and never
// needs materialized mip levels.
func (t *Texture) MipCount() int {
	size := t.Size()
	n := 1
	for w, h := size.Width, size.Height; w > 1 || h > 1; w, h = w/2, h/2 {
		n++
	}
	return n
}

// clear resets every pixel to transparent black.
func (t *Texture) clear() {
	pix := t.img.Pix
	for i := range pix {
		pix[i] = 0
	}
}

// renderTarget pairs a texture with the blur.RenderTarget interface.
type renderTarget struct {
	tex *Texture
}

func (r *renderTarget) Texture() blur.Texture { return r.tex }
func (r *renderTarget) Size() blur.ISize      { return r.tex.Size() }
