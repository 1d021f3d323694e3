// Package blur implements a separable Gaussian blur as a multi-pass GPU
// filter over an arbitrary rendered input.
//
// # Overview
//
// A filter invocation snapshots its input, renders it into a downsampled
// target with a transparent gutter sized to the blur halo, applies a 1-D
// Gaussian kernel twice (vertical, then horizontal) while ping-ponging
// between render targets, and finally recombines the blurred result with
// the original snapshot according to the requested blur style.
//
// The package owns the blur math and pass sequencing only. Texture
// allocation, render pass encoding, and scene compositing are consumed
// through narrow interfaces (Renderer, RenderPass, FilterInput, Geometry)
// so the filter can run against any backend. Two backends ship with the
// module:
//   - backend/software: pure CPU reference implementation
//   - backend/wgpu: GPU implementation on gogpu/wgpu's hal layer
//
// # Quick Start
//
//	f := blur.NewFilter(8, 8)
//	result, ok := f.RenderFilter(inputs, renderer, &entity, blur.Identity(), coverage, &hint)
//	if ok {
//	    result.Render(renderer, scenePass)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Filter, Entity, Snapshot, KernelSamples, Matrix, Rect
//   - Math: sigma scaling, downsample scale selection, kernel generation
//   - Backends: software (CPU reference), wgpu (hal render pipelines)
package blur
