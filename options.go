package blur

// Option configures a Filter during creation.
//
// Example:
//
//	// Plain blur with repeating edges
//	f := blur.NewFilter(4, 4, blur.WithTileMode(blur.TileRepeat))
//
//	// Mask blur showing only outside a shape
//	f := blur.NewFilter(8, 8, blur.WithStyle(blur.StyleOuter, shape))
type Option func(*Filter)

// WithTileMode sets how samples outside the input texture are produced.
// The default is TileDecal: everything outside the input is transparent.
func WithTileMode(mode TileMode) Option {
	return func(f *Filter) {
		f.tileMode = mode
	}
}

// WithStyle sets the blur style and, for the inner and outer styles, the
// mask geometry the blur is clipped against. StyleInner and StyleOuter
// require a non-nil mask; a missing mask falls back to StyleNormal.
func WithStyle(style BlurStyle, mask Geometry) Option {
	return func(f *Filter) {
		f.style = style
		f.mask = mask
	}
}
