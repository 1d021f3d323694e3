package software

import (
	"errors"

	"github.com/gogpu/blur"
)

// ErrBadTarget is returned when MakeSubpassInto receives a target created
// by another backend.
var ErrBadTarget = errors.New("software: target is not a software render target")

// Renderer is a CPU implementation of blur.Renderer. Subpasses execute
// eagerly inside MakeSubpass, so command buffers are recording tokens only
// and Submit has nothing left to do.
//
// The zero value is ready to use.
type Renderer struct{}

// New creates a software renderer.
func New() *Renderer {
	return &Renderer{}
}

// BackendType returns BackendSoftware.
func (r *Renderer) BackendType() blur.BackendType {
	return blur.BackendSoftware
}

// SupportsDecalTileMode returns true; decal sampling is implemented
// per-texel.
func (r *Renderer) SupportsDecalTileMode() bool {
	return true
}

// CreateCommandBuffer returns an inert token: software passes run eagerly.
func (r *Renderer) CreateCommandBuffer() (blur.CommandBuffer, error) {
	return struct{}{}, nil
}

// MakeSubpass allocates a transparent target of the given size and runs
// draw against it immediately.
func (r *Renderer) MakeSubpass(label string, size blur.ISize, cmd blur.CommandBuffer, draw blur.SubpassFunc) (blur.RenderTarget, error) {
	if size.IsEmpty() {
		return nil, errors.New("software: empty subpass size")
	}
	target := &renderTarget{tex: newTarget(size)}
	return r.MakeSubpassInto(label, target, cmd, draw)
}

// MakeSubpassInto clears the target to transparent and runs draw against
// it immediately.
func (r *Renderer) MakeSubpassInto(label string, target blur.RenderTarget, cmd blur.CommandBuffer, draw blur.SubpassFunc) (blur.RenderTarget, error) {
	rt, ok := target.(*renderTarget)
	if !ok {
		return nil, ErrBadTarget
	}
	rt.tex.clear()
	blur.Logger().Debug("software subpass", "label", label,
		"width", rt.tex.Size().Width, "height", rt.tex.Size().Height)
	if err := draw(&pass{target: rt.tex}); err != nil {
		return nil, err
	}
	return rt, nil
}

// Submit acknowledges the command buffers. All work already ran.
func (r *Renderer) Submit(cmds ...blur.CommandBuffer) bool {
	return true
}

// NewScenePass begins an eager pass over an existing texture, for
// replaying a filter result entity into caller-owned pixels.
func (r *Renderer) NewScenePass(target *Texture) blur.RenderPass {
	return &pass{target: target}
}
