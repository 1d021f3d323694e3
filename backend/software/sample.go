package software

import (
	"image"
	"math"

	"github.com/gogpu/blur"
)

// rgba is a premultiplied color with components in [0, 1].
type rgba struct {
	r, g, b, a float32
}

func (c rgba) scale(s float32) rgba {
	return rgba{c.r * s, c.g * s, c.b * s, c.a * s}
}

func (c rgba) add(o rgba) rgba {
	return rgba{c.r + o.r, c.g + o.g, c.b + o.b, c.a + o.a}
}

// wrapTexel resolves a texel index against an axis of length n for the
// given tile mode. ok=false means the texel is transparent (decal).
func wrapTexel(i, n int, tile blur.TileMode) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch tile {
	case blur.TileClamp:
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	case blur.TileRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case blur.TileMirror:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i, true
	default: // TileDecal
		return 0, false
	}
}

// texel reads a single texel, honoring the tile mode at the borders.
func texel(img *image.RGBA, x, y int, tile blur.TileMode) rgba {
	b := img.Bounds()
	xi, ok := wrapTexel(x, b.Dx(), tile)
	if !ok {
		return rgba{}
	}
	yi, ok := wrapTexel(y, b.Dy(), tile)
	if !ok {
		return rgba{}
	}
	off := img.PixOffset(b.Min.X+xi, b.Min.Y+yi)
	p := img.Pix[off : off+4 : off+4]
	return rgba{
		r: float32(p[0]) / 255,
		g: float32(p[1]) / 255,
		b: float32(p[2]) / 255,
		a: float32(p[3]) / 255,
	}
}

// sampleBilinear samples img at normalized coordinates (u, v) with
// bilinear filtering. Texel centers sit at (i+0.5)/n.
func sampleBilinear(img *image.RGBA, u, v float64, tile blur.TileMode) rgba {
	b := img.Bounds()
	px := u*float64(b.Dx()) - 0.5
	py := v*float64(b.Dy()) - 0.5

	x0 := int(math.Floor(px))
	y0 := int(math.Floor(py))
	fx := float32(px - math.Floor(px))
	fy := float32(py - math.Floor(py))

	c00 := texel(img, x0, y0, tile)
	c10 := texel(img, x0+1, y0, tile)
	c01 := texel(img, x0, y0+1, tile)
	c11 := texel(img, x0+1, y0+1, tile)

	top := c00.scale(1 - fx).add(c10.scale(fx))
	bot := c01.scale(1 - fx).add(c11.scale(fx))
	return top.scale(1 - fy).add(bot.scale(fy))
}

// storePixel writes a premultiplied color composited source-over onto the
// destination pixel.
func storePixel(img *image.RGBA, x, y int, c rgba) {
	off := img.PixOffset(x, y)
	p := img.Pix[off : off+4 : off+4]
	inv := 1 - clamp01(c.a)
	p[0] = quantize(clamp01(clamp01(c.r) + float32(p[0])/255*inv))
	p[1] = quantize(clamp01(clamp01(c.g) + float32(p[1])/255*inv))
	p[2] = quantize(clamp01(clamp01(c.b) + float32(p[2])/255*inv))
	p[3] = quantize(clamp01(clamp01(c.a) + float32(p[3])/255*inv))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func quantize(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
