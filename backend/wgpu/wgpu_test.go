package wgpu

import (
	"image"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blur"
)

// The shaders must compile standalone through naga; device drivers give
// far worse diagnostics.
func TestShaderSourcesCompile(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"texture_fill", GetTextureFillShaderSource()},
		{"gaussian_blur", GetGaussianBlurShaderSource()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.source == "" {
				t.Fatal("embedded shader source is empty")
			}
			spirv, err := naga.Compile(tt.source)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			if len(spirv) == 0 {
				t.Fatal("compile produced no SPIR-V")
			}
		})
	}
}

func TestBlurUniformSizeMatchesShader(t *testing.T) {
	// Header vec4 plus one vec4 per shader kernel sample.
	want := 16 + blur.MaxShaderKernelSamples*16
	if blurUniformSize != want {
		t.Errorf("blurUniformSize = %d, want %d", blurUniformSize, want)
	}
}

func TestSubtractRect(t *testing.T) {
	base := blur.RectXYWH(0, 0, 10, 10)

	tests := []struct {
		name   string
		hole   blur.Rect
		expect int
	}{
		{"disjoint keeps rect", blur.RectXYWH(20, 20, 5, 5), 1},
		{"hole in center splits four ways", blur.RectXYWH(4, 4, 2, 2), 4},
		{"hole covering all removes rect", blur.RectXYWH(-1, -1, 12, 12), 0},
		{"hole on left edge", blur.RectXYWH(0, 0, 5, 10), 1},
		{"horizontal band splits two ways", blur.RectXYWH(0, 4, 10, 2), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subtractRect(base, tt.hole)
			if len(got) != tt.expect {
				t.Fatalf("subtractRect produced %d rects, want %d: %+v", len(got), tt.expect, got)
			}
			var area float64
			for _, r := range got {
				area += r.Width() * r.Height()
				if overlap, ok := r.Intersect(tt.hole); ok {
					t.Errorf("result rect %+v overlaps hole by %+v", r, overlap)
				}
			}
			holeOverlap, ok := base.Intersect(tt.hole)
			wantArea := base.Width() * base.Height()
			if ok {
				wantArea -= holeOverlap.Width() * holeOverlap.Height()
			}
			if area != wantArea {
				t.Errorf("remaining area = %v, want %v", area, wantArea)
			}
		})
	}
}

func TestClipRegions(t *testing.T) {
	p := &pass{size: blur.ISize{Width: 100, Height: 100}}

	if err := p.RecordClip(blur.ClipDraw{
		Op:        blur.ClipIntersect,
		Geometry:  blur.NewRectGeometry(blur.RectXYWH(10, 10, 50, 50)),
		Transform: blur.Identity(),
	}); err != nil {
		t.Fatal(err)
	}
	if err := p.RecordClip(blur.ClipDraw{
		Op:        blur.ClipDifference,
		Geometry:  blur.NewRectGeometry(blur.RectXYWH(20, 20, 10, 10)),
		Transform: blur.Identity(),
	}); err != nil {
		t.Fatal(err)
	}

	regions := p.clipRegions(blur.RectXYWH(0, 0, 100, 100))
	for _, r := range regions {
		if !blur.RectXYWH(10, 10, 50, 50).ContainsRect(r) {
			t.Errorf("region %+v escapes the intersect clip", r)
		}
		if _, ok := r.Intersect(blur.RectXYWH(20, 20, 10, 10)); ok {
			t.Errorf("region %+v overlaps the difference clip", r)
		}
	}
	var area float64
	for _, r := range regions {
		area += r.Width() * r.Height()
	}
	if want := 50.0*50 - 10*10; area != want {
		t.Errorf("clipped area = %v, want %v", area, want)
	}
}

func TestNew_NilDevice(t *testing.T) {
	if _, err := New(nil, nil); err != ErrNilDevice {
		t.Errorf("New(nil) error = %v, want ErrNilDevice", err)
	}
}

// fakeBuffer, fakeView, and fakeSampler satisfy the hal resource
// interfaces with bare handles.
type fakeBuffer struct{ handle uintptr }

func (b fakeBuffer) Destroy()              {}
func (b fakeBuffer) NativeHandle() uintptr { return b.handle }

type fakeView struct{ handle uintptr }

func (v fakeView) Destroy()              {}
func (v fakeView) NativeHandle() uintptr { return v.handle }

type fakeSampler struct{ handle uintptr }

func (s fakeSampler) Destroy()              {}
func (s fakeSampler) NativeHandle() uintptr { return s.handle }

// Bind group entries must carry the gputypes binding wrappers around the
// native handles; hal resource values are not binding resources.
func TestQuadBindGroupEntries(t *testing.T) {
	entries := quadBindGroupEntries(fakeBuffer{handle: 1}, 64, fakeView{handle: 2}, fakeSampler{handle: 3})
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	buf, ok := entries[0].Resource.(gputypes.BufferBinding)
	if !ok || buf.Buffer != 1 || buf.Size != 64 {
		t.Errorf("entry 0 resource = %#v, want BufferBinding with handle 1 and size 64", entries[0].Resource)
	}
	view, ok := entries[1].Resource.(gputypes.TextureViewBinding)
	if !ok || view.TextureView != 2 {
		t.Errorf("entry 1 resource = %#v, want TextureViewBinding with handle 2", entries[1].Resource)
	}
	smp, ok := entries[2].Resource.(gputypes.SamplerBinding)
	if !ok || smp.Sampler != 3 {
		t.Errorf("entry 2 resource = %#v, want SamplerBinding with handle 3", entries[2].Resource)
	}
}

// fakeQueue reports a fixed completed submission index.
type fakeQueue struct {
	completed uint64
}

func (q *fakeQueue) Submit(commandBuffers []hal.CommandBuffer) (uint64, error) {
	return q.completed, nil
}

func (q *fakeQueue) PollCompleted() uint64 { return q.completed }

func (q *fakeQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error { return nil }

func (q *fakeQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	return nil
}

func (q *fakeQueue) Present(surface hal.Surface, texture hal.SurfaceTexture, damageRects []image.Rectangle) error {
	return nil
}

func (q *fakeQueue) GetTimestampPeriod() float32 { return 1 }

func (q *fakeQueue) SupportsCommandBufferCopies() bool { return false }

func (q *fakeQueue) SetSwapchainSuppressed(suppressed bool) {}

func TestWaitSubmission(t *testing.T) {
	r := &Renderer{queue: &fakeQueue{completed: 2}}
	if !r.waitSubmission(2, time.Second) {
		t.Error("waitSubmission = false for a completed submission")
	}
	if !r.waitSubmission(1, time.Second) {
		t.Error("waitSubmission = false for an older submission")
	}
	if r.waitSubmission(3, 5*time.Millisecond) {
		t.Error("waitSubmission = true for a submission still in flight")
	}
}
