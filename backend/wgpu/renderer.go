package wgpu

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blur"
)

// Renderer errors.
var (
	// ErrNilDevice is returned when creating a renderer without a device.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrBadCommandBuffer is returned when a command buffer from another
	// backend is passed in.
	ErrBadCommandBuffer = errors.New("wgpu: not a wgpu command buffer")

	// ErrBadTarget is returned when a render target from another backend
	// is passed in.
	ErrBadTarget = errors.New("wgpu: not a wgpu render target")

	// ErrBadTexture is returned when a draw references a texture from
	// another backend.
	ErrBadTexture = errors.New("wgpu: not a wgpu texture")
)

// submitTimeout bounds the completion wait after queue submission.
const submitTimeout = 5 * time.Second

// Renderer implements blur.Renderer on a hal device. Pipelines are
// created lazily on first use and cached for the renderer's lifetime;
// samplers are cached per descriptor.
//
// Renderer is safe for concurrent use. Each filter invocation owns its
// command buffer; shared pipeline and sampler caches are mutex-protected.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	mu       sync.Mutex
	fill     *quadPipeline
	blurPipe *quadPipeline
	samplers map[blur.SamplerDescriptor]hal.Sampler
}

// New creates a renderer on the given device and queue.
func New(device hal.Device, queue hal.Queue) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Renderer{
		device:   device,
		queue:    queue,
		samplers: make(map[blur.SamplerDescriptor]hal.Sampler),
	}, nil
}

// BackendType returns BackendWebGPU.
func (r *Renderer) BackendType() blur.BackendType {
	return blur.BackendWebGPU
}

// SupportsDecalTileMode returns true; decal is implemented in the
// fragment shaders.
func (r *Renderer) SupportsDecalTileMode() bool {
	return true
}

// Destroy releases all cached GPU resources.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fill != nil {
		r.fill.destroy(r.device)
		r.fill = nil
	}
	if r.blurPipe != nil {
		r.blurPipe.destroy(r.device)
		r.blurPipe = nil
	}
	for _, s := range r.samplers {
		r.device.DestroySampler(s)
	}
	r.samplers = make(map[blur.SamplerDescriptor]hal.Sampler)
}

// ensurePipelines creates the fill and blur pipelines on first use.
func (r *Renderer) ensurePipelines() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fill == nil {
		fill, err := createQuadPipeline(r.device, "texture_fill", textureFillShaderSource)
		if err != nil {
			return err
		}
		r.fill = fill
	}
	if r.blurPipe == nil {
		bp, err := createQuadPipeline(r.device, "gaussian_blur", gaussianBlurShaderSource)
		if err != nil {
			return err
		}
		r.blurPipe = bp
	}
	return nil
}

// sampler returns a cached hal sampler for the descriptor.
func (r *Renderer) sampler(desc blur.SamplerDescriptor) (hal.Sampler, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.samplers[desc]; ok {
		return s, nil
	}
	s, err := r.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "blur_sampler",
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	r.samplers[desc] = s
	return s, nil
}

// commandBuffer wraps a hal command encoder plus the transient buffers and
// bind groups recorded into it. Transients stay alive until the
// submission they were recorded into completes.
type commandBuffer struct {
	encoder    hal.CommandEncoder
	buffers    []hal.Buffer
	bindGroups []hal.BindGroup
}

// CreateCommandBuffer allocates a command encoder and begins encoding.
func (r *Renderer) CreateCommandBuffer() (blur.CommandBuffer, error) {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "blur_filter_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("blur_filter"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return &commandBuffer{encoder: encoder}, nil
}

// MakeSubpass creates a transparent render target and records draw into it
// through a clear-loading render pass.
func (r *Renderer) MakeSubpass(label string, size blur.ISize, cmd blur.CommandBuffer, draw blur.SubpassFunc) (blur.RenderTarget, error) {
	if size.IsEmpty() {
		return nil, errors.New("wgpu: empty subpass size")
	}
	tex, err := createTargetTexture(r.device, label, size)
	if err != nil {
		return nil, err
	}
	return r.MakeSubpassInto(label, &renderTarget{tex: tex}, cmd, draw)
}

// MakeSubpassInto records draw into an existing target. The pass clears
// the target first; ping-pong reuse never needs the previous contents.
func (r *Renderer) MakeSubpassInto(label string, target blur.RenderTarget, cmd blur.CommandBuffer, draw blur.SubpassFunc) (blur.RenderTarget, error) {
	cb, ok := cmd.(*commandBuffer)
	if !ok {
		return nil, ErrBadCommandBuffer
	}
	rt, ok := target.(*renderTarget)
	if !ok {
		return nil, ErrBadTarget
	}
	if err := r.ensurePipelines(); err != nil {
		return nil, err
	}

	rp := cb.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       rt.tex.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
	})
	p := &pass{renderer: r, cb: cb, rp: rp, size: rt.tex.size}
	err := draw(p)
	rp.End()
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Submit finishes encoding, submits all command buffers in one queue
// submission, and blocks until the submission completes so transient
// resources can be freed. Returns false on any failure.
func (r *Renderer) Submit(cmds ...blur.CommandBuffer) bool {
	cbs := make([]*commandBuffer, 0, len(cmds))
	halBufs := make([]hal.CommandBuffer, 0, len(cmds))
	for _, cmd := range cmds {
		cb, ok := cmd.(*commandBuffer)
		if !ok {
			blur.Logger().Error("submit: not a wgpu command buffer")
			return false
		}
		halBuf, err := cb.encoder.EndEncoding()
		if err != nil {
			blur.Logger().Error("submit: end encoding", "error", err)
			return false
		}
		cbs = append(cbs, cb)
		halBufs = append(halBufs, halBuf)
	}

	ok := true
	index, err := r.queue.Submit(halBufs)
	if err != nil {
		blur.Logger().Error("submit", "error", err)
		ok = false
	} else if !r.waitSubmission(index, submitTimeout) {
		blur.Logger().Error("submit: completion wait timed out", "submission", index)
		ok = false
	}

	for _, halBuf := range halBufs {
		r.device.FreeCommandBuffer(halBuf)
	}
	for _, cb := range cbs {
		cb.release(r.device)
	}
	return ok
}

// waitSubmission polls the queue until the submission index has completed
// or the timeout elapses.
func (r *Renderer) waitSubmission(index uint64, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for r.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}

// release destroys the transient resources recorded for this buffer.
func (cb *commandBuffer) release(device hal.Device) {
	for _, bg := range cb.bindGroups {
		device.DestroyBindGroup(bg)
	}
	cb.bindGroups = nil
	for _, buf := range cb.buffers {
		device.DestroyBuffer(buf)
	}
	cb.buffers = nil
}
