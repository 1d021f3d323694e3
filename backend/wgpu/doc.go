// Package wgpu provides a WebGPU rendering backend for the blur pipeline
// on top of github.com/gogpu/wgpu/hal. Subpass draws are recorded into a
// hal command encoder and executed on Submit; each filter invocation costs
// one encoder and one queue submission.
//
// Two render pipelines are created lazily on first use: a textured quad
// fill for the downsample pass and snapshot composition, and a 1-D
// convolution for the blur passes. Shaders are WGSL, embedded at build
// time and compiled by the device (or ahead of time through gogpu/naga).
package wgpu
