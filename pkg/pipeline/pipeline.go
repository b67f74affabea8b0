// Package pipeline orchestrates QR rendering with content-addressed caching.
//
// This package is the single place where a render request meets the cache.
// For every requested output it derives a fingerprint, short-circuits on a
// cache hit, picks the cheapest correct render path on a miss, stores the
// result, and degrades gracefully when a logo file is missing.
//
// # Render Paths
//
// Each output is produced by one of three paths, identified by a tag that is
// folded into the fingerprint so different paths never share an entry:
//
//  1. vector-svg: SVG without a logo, drawn directly by [engine.EncodeSVG]
//  2. engine-svg: SVG with a logo, delegated to [engine.Engine.EncodeVector]
//  3. raster-<format>:<quality>: the SVG above (through the cache), then
//     [engine.Engine.Rasterize]
//
// # Usage
//
// Create a Runner once and share it; it is safe for concurrent use:
//
//	runner := pipeline.NewRunner(nil, nil, nil, logger)
//	req := qr.New("https://example.com", qr.WithLogoPath("logo.png", 0.2))
//
//	svg, err := runner.SVG(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(svg.Markup)
//
//	jpg, err := runner.JPEG(ctx, req, pipeline.WithQuality(75))
//
// # Missing Logos
//
// A logo path that does not exist is not an error. The call renders without
// the logo, caches the result under the logo-less fingerprint, and reports a
// single [Notice] through the result, the runner's logger and
// [Runner.OnNotice].
package pipeline

import (
	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultQuality is the raster quality used when a call does not set one.
const DefaultQuality = 90

// =============================================================================
// Results
// =============================================================================

// Notice is a non-fatal warning raised during a render call.
type Notice struct {
	Level   string
	Code    errors.Code
	Message string
}

// Result is the output of one render call.
type Result struct {
	Format qr.Format

	// Tag names the render path that produced the output.
	Tag string

	// Key is the cache fingerprint. Empty when caching was disabled.
	Key string

	// Markup holds SVG output; Data holds raster output.
	Markup string
	Data   []byte

	// Width and Height are the image dimensions including the quiet zone.
	Width, Height int

	CacheHit bool
	Notices  []Notice
}

// Bytes returns the payload regardless of format.
func (r *Result) Bytes() []byte {
	if r.Format == qr.FormatSVG {
		return []byte(r.Markup)
	}
	return r.Data
}

// Bundle holds every format rendered from one request.
type Bundle struct {
	SVG, PNG, JPEG, WebP *Result

	Width, Height int
	Notices       []Notice
}

// Get returns the result for format, or nil.
func (b *Bundle) Get(format qr.Format) *Result {
	switch format {
	case qr.FormatSVG:
		return b.SVG
	case qr.FormatPNG:
		return b.PNG
	case qr.FormatJPEG:
		return b.JPEG
	case qr.FormatWebP:
		return b.WebP
	}
	return nil
}

// =============================================================================
// Call Options
// =============================================================================

// CallOption adjusts a single render call.
type CallOption func(*callOptions)

type callOptions struct {
	quality int
	noCache bool
}

// WithQuality sets the raster quality (1-100). JPEG honours it; the other
// formats only record it in their fingerprint.
func WithQuality(q int) CallOption {
	return func(o *callOptions) { o.quality = q }
}

// WithoutCache bypasses the cache for this call.
func WithoutCache() CallOption {
	return func(o *callOptions) { o.noCache = true }
}

func newCallOptions(opts []CallOption) callOptions {
	o := callOptions{quality: DefaultQuality}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ConvertOptions configures [Runner.Convert].
type ConvertOptions struct {
	// Width and Height set the output size; zero keeps the document's own.
	Width, Height int

	// Quality defaults to DefaultQuality when zero.
	Quality int
}
