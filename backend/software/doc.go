// Package software provides a pure-Go CPU rendering backend for the blur
// pipeline. It exists for environments without a GPU and as the reference
// implementation the GPU backends are checked against: every pass renders
// eagerly into an image.RGBA, so results are inspectable immediately after
// the draw callback returns.
//
// Textures wrap image.RGBA pixels. Sampling is bilinear with full tile
// mode support (clamp, repeat, mirror, decal). Snapshot composition uses
// golang.org/x/image/draw for the affine transform and blend.
package software
