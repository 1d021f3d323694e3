package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/texture_fill.wgsl
var textureFillShaderSource string

//go:embed shaders/gaussian_blur.wgsl
var gaussianBlurShaderSource string

// quadVertexStride is the byte stride per vertex.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	uv       (vec2<f32>) = 8 bytes (location 1)
//
// Total = 16 bytes per vertex.
const quadVertexStride = 16

// fillUniformSize is the byte size of FillUniforms: one vec4.
const fillUniformSize = 16

// blurUniformSize is the byte size of BlurUniforms: one vec4 header plus
// 50 vec4 kernel samples.
const blurUniformSize = 16 + 50*16

// quadPipeline holds the GPU objects for one textured-quad shader. Both
// the fill and the blur pipelines share the bind group shape:
//
//	Binding 0: uniforms (uniform buffer, vertex+fragment)
//	Binding 1: source texture (texture_2d, fragment)
//	Binding 2: sampler (fragment)
//
// Two pipeline variants are kept: blended (premultiplied source-over, for
// compositing into scene targets) and replace (no blending, for subpass
// targets that are cleared and written exactly once).
type quadPipeline struct {
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	blended       hal.RenderPipeline
	replace       hal.RenderPipeline
}

// createQuadPipeline compiles source and builds both pipeline variants.
func createQuadPipeline(device hal.Device, name, source string) (*quadPipeline, error) {
	if source == "" {
		return nil, fmt.Errorf("%s shader source is empty", name)
	}

	p := &quadPipeline{}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  name + "_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}
	p.shader = shader

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: name + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create %s uniform layout: %w", name, err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            name + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create %s pipeline layout: %w", name, err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	p.blended, err = p.createVariant(device, name+"_blended", &premulBlend)
	if err != nil {
		p.destroy(device)
		return nil, err
	}
	p.replace, err = p.createVariant(device, name+"_replace", nil)
	if err != nil {
		p.destroy(device)
		return nil, err
	}
	return p, nil
}

func (p *quadPipeline) createVariant(device hal.Device, label string, blend *gputypes.BlendState) (hal.RenderPipeline, error) {
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}
	return pipeline, nil
}

// destroy releases all pipeline resources in reverse creation order.
func (p *quadPipeline) destroy(device hal.Device) {
	if p.replace != nil {
		device.DestroyRenderPipeline(p.replace)
		p.replace = nil
	}
	if p.blended != nil {
		device.DestroyRenderPipeline(p.blended)
		p.blended = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// quadVertexLayout returns the vertex buffer layout shared by the fill and
// blur pipelines. Matches VertexInput in the WGSL sources:
//
//	location 0: position (vec2<f32>)
//	location 1: uv (vec2<f32>)
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

// GetTextureFillShaderSource returns the WGSL source for the textured quad
// fill shader.
func GetTextureFillShaderSource() string {
	return textureFillShaderSource
}

// GetGaussianBlurShaderSource returns the WGSL source for the 1-D Gaussian
// convolution shader.
func GetGaussianBlurShaderSource() string {
	return gaussianBlurShaderSource
}
