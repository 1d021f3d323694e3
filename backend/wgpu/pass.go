package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blur"
)

// boundPipeline pairs a pipeline variant with the bind group layout it
// was created from.
type boundPipeline struct {
	pipeline hal.RenderPipeline
	layout   hal.BindGroupLayout
}

// bind selects a pipeline variant together with its layout.
func (p *quadPipeline) bind(blended bool) boundPipeline {
	if blended {
		return boundPipeline{pipeline: p.blended, layout: p.uniformLayout}
	}
	return boundPipeline{pipeline: p.replace, layout: p.uniformLayout}
}

// pass records blur draws into a hal render pass.
type pass struct {
	renderer *Renderer
	cb       *commandBuffer
	rp       hal.RenderPassEncoder
	size     blur.ISize

	// Rectangular clip state accumulated by RecordClip, in target pixel
	// space. Geometry is clipped at coverage-bounds precision.
	clipBounded bool
	clipBounds  blur.Rect
	clipHoles   []blur.Rect
}

// DrawTexture fills the whole target with the source sampled through the
// UV quad. Used by the downsample pass; the target is cleared, so the
// replace pipeline variant applies.
func (p *pass) DrawTexture(d blur.TextureDraw) error {
	src, ok := d.Texture.(*Texture)
	if !ok {
		return ErrBadTexture
	}
	uniforms := make([]byte, fillUniformSize)
	putFloat32(uniforms[0:], d.Alpha)
	putFloat32(uniforms[4:], float32(d.TileMode))
	return p.drawRawQuad(p.renderer.fill.bind(false), src.view, d.Sampler,
		fullTargetQuad(), d.UVs, uniforms)
}

// DrawBlur convolves the source along one axis. The UV quad doubles as
// the position quad, restricting work to the hinted region.
func (p *pass) DrawBlur(d blur.BlurDraw) error {
	src, ok := d.Texture.(*Texture)
	if !ok {
		return ErrBadTexture
	}
	uniforms := make([]byte, blurUniformSize)
	putFloat32(uniforms[0:], float32(d.Kernel.Count))
	putFloat32(uniforms[4:], float32(d.TileMode))
	off := 16
	for _, s := range d.Kernel.Samples[:d.Kernel.Count] {
		putFloat32(uniforms[off+0:], float32(s.UVOffset.X))
		putFloat32(uniforms[off+4:], float32(s.UVOffset.Y))
		putFloat32(uniforms[off+8:], s.Coefficient)
		off += 16
	}
	// Positions double as UVs: the quad covers the same normalized region
	// of the target that it samples from the source.
	pos := blur.Quad{}
	for i, c := range d.UVs {
		pos[i] = p.toNDC(blur.Point{
			X: c.X * float64(p.size.Width),
			Y: c.Y * float64(p.size.Height),
		})
	}
	return p.drawRawQuad(p.renderer.blurPipe.bind(false), src.view, d.Sampler, pos, d.UVs, uniforms)
}

// DrawSnapshot composites the snapshot under its transform, honoring the
// recorded clip state. Clipping is exact for translation+scale transforms;
// rotated snapshots under an active clip are drawn unclipped with a debug
// log, since the clip state is axis-aligned.
func (p *pass) DrawSnapshot(d blur.SnapshotDraw) error {
	src, ok := d.Snapshot.Texture.(*Texture)
	if !ok {
		return ErrBadTexture
	}
	pipeline := p.renderer.fill.bind(d.BlendMode != blur.BlendSource)
	uniforms := make([]byte, fillUniformSize)
	putFloat32(uniforms[0:], d.Snapshot.Opacity)
	putFloat32(uniforms[4:], float32(blur.TileClamp))

	texBounds := blur.RectFromISize(src.size)
	clipped := p.clipBounded || len(p.clipHoles) > 0
	if !clipped {
		pos := texBounds.Corners().Transform(d.Transform)
		return p.drawPixelQuad(pipeline, src.view, d.Snapshot.Sampler, pos, blur.UnitQuad(), uniforms)
	}

	if !d.Transform.IsTranslationScaleOnly() {
		blur.Logger().Debug("clip dropped for rotated snapshot draw")
		pos := texBounds.Corners().Transform(d.Transform)
		return p.drawPixelQuad(pipeline, src.view, d.Snapshot.Sampler, pos, blur.UnitQuad(), uniforms)
	}

	dest := texBounds.TransformBounds(d.Transform)
	for _, region := range p.clipRegions(dest) {
		// Map the clipped sub-rectangle back to its UV range.
		u0 := (region.Min.X - dest.Min.X) / dest.Width()
		v0 := (region.Min.Y - dest.Min.Y) / dest.Height()
		u1 := (region.Max.X - dest.Min.X) / dest.Width()
		v1 := (region.Max.Y - dest.Min.Y) / dest.Height()
		uvs := rectOf(u0, v0, u1, v1).Corners()
		if err := p.drawPixelQuad(pipeline, src.view, d.Snapshot.Sampler,
			region.Corners(), uvs, uniforms); err != nil {
			return err
		}
	}
	return nil
}

// RecordClip folds the geometry's coverage bounds into the pass clip
// state.
func (p *pass) RecordClip(d blur.ClipDraw) error {
	region, ok := d.Geometry.Coverage(d.Transform)
	if !ok {
		if d.Op == blur.ClipIntersect {
			p.clipBounded = true
			p.clipBounds = blur.Rect{}
		}
		return nil
	}
	switch d.Op {
	case blur.ClipIntersect:
		if p.clipBounded {
			p.clipBounds, _ = p.clipBounds.Intersect(region)
		} else {
			p.clipBounded = true
			p.clipBounds = region
		}
	case blur.ClipDifference:
		p.clipHoles = append(p.clipHoles, region)
	}
	return nil
}

// clipRegions decomposes dest into the sub-rectangles that survive the
// clip state.
func (p *pass) clipRegions(dest blur.Rect) []blur.Rect {
	regions := []blur.Rect{dest}
	if p.clipBounded {
		clipped, ok := dest.Intersect(p.clipBounds)
		if !ok {
			return nil
		}
		regions = []blur.Rect{clipped}
	}
	for _, hole := range p.clipHoles {
		var next []blur.Rect
		for _, r := range regions {
			next = append(next, subtractRect(r, hole)...)
		}
		regions = next
	}
	return regions
}

// subtractRect returns r minus hole as up to four disjoint rectangles.
func subtractRect(r, hole blur.Rect) []blur.Rect {
	overlap, ok := r.Intersect(hole)
	if !ok {
		return []blur.Rect{r}
	}
	var out []blur.Rect
	if overlap.Min.Y > r.Min.Y { // top band
		out = append(out, rectOf(r.Min.X, r.Min.Y, r.Max.X, overlap.Min.Y))
	}
	if overlap.Max.Y < r.Max.Y { // bottom band
		out = append(out, rectOf(r.Min.X, overlap.Max.Y, r.Max.X, r.Max.Y))
	}
	if overlap.Min.X > r.Min.X { // left band
		out = append(out, rectOf(r.Min.X, overlap.Min.Y, overlap.Min.X, overlap.Max.Y))
	}
	if overlap.Max.X < r.Max.X { // right band
		out = append(out, rectOf(overlap.Max.X, overlap.Min.Y, r.Max.X, overlap.Max.Y))
	}
	return out
}

func rectOf(x0, y0, x1, y1 float64) blur.Rect {
	return blur.Rect{Min: blur.Point{X: x0, Y: y0}, Max: blur.Point{X: x1, Y: y1}}
}

// toNDC converts target pixel coordinates to normalized device
// coordinates (y grows downward in pixel space, upward in NDC).
func (p *pass) toNDC(pt blur.Point) blur.Point {
	return blur.Point{
		X: 2*pt.X/float64(p.size.Width) - 1,
		Y: 1 - 2*pt.Y/float64(p.size.Height),
	}
}

// fullTargetQuad returns the NDC quad covering the entire target, in
// left-top, right-top, left-bottom, right-bottom order.
func fullTargetQuad() blur.Quad {
	return blur.Quad{
		{X: -1, Y: 1},
		{X: 1, Y: 1},
		{X: -1, Y: -1},
		{X: 1, Y: -1},
	}
}

// drawPixelQuad draws a quad given in target pixel coordinates.
func (p *pass) drawPixelQuad(pipeline boundPipeline, view hal.TextureView,
	sampler blur.SamplerDescriptor, pos, uvs blur.Quad, uniforms []byte) error {
	ndc := blur.Quad{}
	for i, c := range pos {
		ndc[i] = p.toNDC(c)
	}
	return p.drawRawQuad(pipeline, view, sampler, ndc, uvs, uniforms)
}

// drawRawQuad uploads transient vertex and uniform buffers, builds the
// bind group, and records a 4-vertex triangle-strip draw.
func (p *pass) drawRawQuad(pipeline boundPipeline, view hal.TextureView,
	sampler blur.SamplerDescriptor, pos, uvs blur.Quad, uniforms []byte) error {
	halSampler, err := p.renderer.sampler(sampler)
	if err != nil {
		return err
	}

	// Quad corner order (LT, RT, LB, RB) is already triangle-strip order.
	vertices := make([]byte, 4*quadVertexStride)
	for i := 0; i < 4; i++ {
		off := i * quadVertexStride
		putFloat32(vertices[off+0:], float32(pos[i].X))
		putFloat32(vertices[off+4:], float32(pos[i].Y))
		putFloat32(vertices[off+8:], float32(uvs[i].X))
		putFloat32(vertices[off+12:], float32(uvs[i].Y))
	}

	vertBuf, err := p.createAndUploadBuffer("blur_quad_vertices", vertices,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	uniformBuf, err := p.createAndUploadBuffer("blur_quad_uniforms", uniforms,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}

	bindGroup, err := p.renderer.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "blur_quad_bind",
		Layout:  pipeline.layout,
		Entries: quadBindGroupEntries(uniformBuf, len(uniforms), view, halSampler),
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	p.cb.bindGroups = append(p.cb.bindGroups, bindGroup)

	p.rp.SetPipeline(pipeline.pipeline)
	p.rp.SetBindGroup(0, bindGroup, nil)
	p.rp.SetVertexBuffer(0, vertBuf, 0)
	p.rp.Draw(4, 1, 0, 0)
	return nil
}

// quadBindGroupEntries binds the uniform buffer, source view, and sampler
// for the quad pipelines. Resources are passed by native handle through
// the gputypes binding wrappers.
func quadBindGroupEntries(uniformBuf hal.Buffer, uniformSize int,
	view hal.TextureView, sampler hal.Sampler) []gputypes.BindGroupEntry {
	return []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{
			Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uint64(uniformSize),
		}},
		{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
		{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}},
	}
}

// createAndUploadBuffer creates a transient GPU buffer and uploads data.
// The buffer is tracked on the command buffer and destroyed once the
// submission completes.
func (p *pass) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.renderer.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	p.cb.buffers = append(p.cb.buffers, buf)
	if err := p.renderer.queue.WriteBuffer(buf, 0, data); err != nil {
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}

func putFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v))
}
