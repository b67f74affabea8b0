// Package render turns QR module matrices into images.
//
// # Vector Output
//
// [EncodeSVG] writes a matrix as a compact SVG document: one background
// rectangle, one path holding every dark module as merged horizontal runs,
// and optionally a centred logo embedded as a PNG data URI.
//
//	m, _ := symbol.Encode("hello", symbol.LevelM)
//	svg := render.EncodeSVG(m,
//	    render.WithSize(200),
//	    render.WithMargin(20),
//	    render.WithColors(bg, fg),
//	)
//
// # Raster Output
//
// [Rasterize] draws an SVG document onto an RGBA canvas with oksvg, then
// composites any embedded data-URI images (which oksvg does not draw).
// [EncodePNG], [EncodeJPEG] and [EncodeWebP] serialize the canvas.
//
//	img, err := render.Rasterize(svg, 0, 0) // native size from the viewBox
//	png, err := render.EncodePNG(img)
//
// # Colours
//
// [ParseColor] accepts #rgb, #rrggbb and CSS/SVG colour names. Unknown
// values fail with INVALID_COLOR.
package render
