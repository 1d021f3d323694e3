package software

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/blur"
)

// Draw recording errors.
var (
	// ErrNilTexture is returned when a draw references no texture.
	ErrNilTexture = errors.New("software: draw texture is nil")

	// ErrBadTexture is returned when a draw references a texture from
	// another backend.
	ErrBadTexture = errors.New("software: texture is not a software texture")
)

// clipState is the rectangular clip accumulated by RecordClip. Intersect
// clips shrink the allowed region; difference clips punch holes in it.
// Geometry is clipped at coverage-bounds precision; exact rasterization of
// mask shapes is the host engine's concern.
type clipState struct {
	bounded bool
	bounds  blur.Rect
	holes   []blur.Rect
}

func (c *clipState) record(d blur.ClipDraw) {
	region, ok := d.Geometry.Coverage(d.Transform)
	if !ok {
		if d.Op == blur.ClipIntersect {
			// Intersecting with nothing clips everything away.
			c.bounded = true
			c.bounds = blur.Rect{}
		}
		return
	}
	switch d.Op {
	case blur.ClipIntersect:
		if c.bounded {
			c.bounds, _ = c.bounds.Intersect(region)
		} else {
			c.bounded = true
			c.bounds = region
		}
	case blur.ClipDifference:
		c.holes = append(c.holes, region)
	}
}

// allows reports whether the pixel center at (x, y) may be written.
func (c *clipState) allows(x, y int) bool {
	p := blur.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	if c.bounded {
		if p.X < c.bounds.Min.X || p.X >= c.bounds.Max.X ||
			p.Y < c.bounds.Min.Y || p.Y >= c.bounds.Max.Y {
			return false
		}
	}
	for _, h := range c.holes {
		if p.X >= h.Min.X && p.X < h.Max.X && p.Y >= h.Min.Y && p.Y < h.Max.Y {
			return false
		}
	}
	return true
}

// mask renders the clip state into an alpha mask covering bounds, or nil
// when no clip is active.
func (c *clipState) mask(bounds image.Rectangle) *image.Alpha {
	if !c.bounded && len(c.holes) == 0 {
		return nil
	}
	m := image.NewAlpha(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if c.allows(x, y) {
				m.Pix[m.PixOffset(x, y)] = 0xFF
			}
		}
	}
	return m
}

// pass renders draws eagerly onto its target.
type pass struct {
	target *Texture
	clip   clipState
}

// interpolateUV maps normalized target coordinates (s, t) through the
// draw's UV quad. Quad corner order is left-top, right-top, left-bottom,
// right-bottom.
func interpolateUV(uvs blur.Quad, s, t float64) (float64, float64) {
	top := uvs[0].Lerp(uvs[1], s)
	bot := uvs[2].Lerp(uvs[3], s)
	p := top.Lerp(bot, t)
	return p.X, p.Y
}

// DrawTexture fills the whole target with src sampled through the UV quad.
func (p *pass) DrawTexture(d blur.TextureDraw) error {
	src, err := unwrap(d.Texture)
	if err != nil {
		return err
	}
	size := p.target.Size()
	for y := 0; y < size.Height; y++ {
		t := (float64(y) + 0.5) / float64(size.Height)
		for x := 0; x < size.Width; x++ {
			if !p.clip.allows(x, y) {
				continue
			}
			s := (float64(x) + 0.5) / float64(size.Width)
			u, v := interpolateUV(d.UVs, s, t)
			c := sampleBilinear(src.img, u, v, d.TileMode).scale(d.Alpha)
			storePixel(p.target.img, x, y, c)
		}
	}
	return nil
}

// DrawBlur convolves src along one axis. The UV quad doubles as the
// position quad: only the region it spans in the target is processed, and
// each processed pixel samples the same coordinates in the source.
func (p *pass) DrawBlur(d blur.BlurDraw) error {
	src, err := unwrap(d.Texture)
	if err != nil {
		return err
	}
	size := p.target.Size()

	// The UV quad from the filter is axis-aligned. Its bounding box in
	// target pixels limits the processed region.
	minU := math.Min(d.UVs[0].X, d.UVs[3].X)
	maxU := math.Max(d.UVs[0].X, d.UVs[3].X)
	minV := math.Min(d.UVs[0].Y, d.UVs[3].Y)
	maxV := math.Max(d.UVs[0].Y, d.UVs[3].Y)
	x0 := int(math.Floor(minU * float64(size.Width)))
	x1 := int(math.Ceil(maxU * float64(size.Width)))
	y0 := int(math.Floor(minV * float64(size.Height)))
	y1 := int(math.Ceil(maxV * float64(size.Height)))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, size.Width), min(y1, size.Height)

	samples := d.Kernel.Samples[:d.Kernel.Count]
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5) / float64(size.Height)
		for x := x0; x < x1; x++ {
			if !p.clip.allows(x, y) {
				continue
			}
			u := (float64(x) + 0.5) / float64(size.Width)
			var acc rgba
			for _, s := range samples {
				c := sampleBilinear(src.img, u+s.UVOffset.X, v+s.UVOffset.Y, d.TileMode)
				acc = acc.add(c.scale(s.Coefficient))
			}
			storePixel(p.target.img, x, y, acc)
		}
	}
	return nil
}

// DrawSnapshot composites the snapshot under its transform using bilinear
// resampling from golang.org/x/image.
func (p *pass) DrawSnapshot(d blur.SnapshotDraw) error {
	src, err := unwrap(d.Snapshot.Texture)
	if err != nil {
		return err
	}

	op := draw.Over
	if d.BlendMode == blur.BlendSource {
		op = draw.Src
	}

	m := d.Transform
	aff := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}

	var opts *draw.Options
	if mask := p.clip.mask(p.target.img.Bounds()); mask != nil {
		opts = &draw.Options{DstMask: mask}
	}
	srcImg := src.img
	if d.Snapshot.Opacity < 1 {
		srcImg = scaleAlpha(srcImg, d.Snapshot.Opacity)
	}
	draw.BiLinear.Transform(p.target.img, aff, srcImg, srcImg.Bounds(), op, opts)
	return nil
}

// RecordClip updates the pass clip state; nothing is drawn.
func (p *pass) RecordClip(d blur.ClipDraw) error {
	p.clip.record(d)
	return nil
}

// scaleAlpha returns a copy of img with every premultiplied component
// scaled by opacity.
func scaleAlpha(img *image.RGBA, opacity float32) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for i, v := range img.Pix {
		out.Pix[i] = uint8(float32(v)*opacity + 0.5)
	}
	return out
}

func unwrap(t blur.Texture) (*Texture, error) {
	if t == nil {
		return nil, ErrNilTexture
	}
	tex, ok := t.(*Texture)
	if !ok {
		return nil, ErrBadTexture
	}
	return tex, nil
}
