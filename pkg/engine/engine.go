// Package engine renders QR symbols to vector markup and converts markup
// to raster images.
//
// [Engine] is the collaborator the pipeline delegates to for logo
// compositing and rasterization. [New] returns the standard implementation
// built on gozxing, oksvg and imaging; tests and embedders can substitute
// their own.
//
// Failures carry codes from pkg/errors so callers can tell them apart:
// INVALID_COLOR, INVALID_LOGO, INVALID_MARKUP, INVALID_INPUT,
// INVALID_QUALITY, ENCODE_FAILED and UNSUPPORTED.
package engine

import (
	"context"

	"github.com/matzehuels/qrforge/pkg/logo"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// Engine renders vector markup and rasterizes it.
type Engine interface {
	// EncodeVector produces a complete SVG document, compositing the logo
	// when spec carries one.
	EncodeVector(ctx context.Context, spec VectorSpec) ([]byte, error)

	// Rasterize converts SVG markup to the requested raster format.
	Rasterize(ctx context.Context, svg []byte, opts RasterOptions) ([]byte, error)
}

// VectorSpec is everything needed to draw one symbol.
type VectorSpec struct {
	Text  string
	Size  int
	Level qr.ECLevel

	// Margin is the quiet zone; nil selects qr.DefaultMargin and omits the
	// width and height attributes from the document.
	Margin *int

	Background string
	Foreground string

	Logo          logo.Source
	LogoSizeRatio float64
}

// SpecFor builds the vector spec for req.
func SpecFor(req *qr.Request) VectorSpec {
	return VectorSpec{
		Text:          req.Text,
		Size:          req.Size,
		Level:         req.ErrorCorrection,
		Margin:        req.Margin,
		Background:    req.BackgroundColor,
		Foreground:    req.ForegroundColor,
		Logo:          req.Logo,
		LogoSizeRatio: req.LogoSizeRatio,
	}
}

// RasterOptions selects the raster encoding.
type RasterOptions struct {
	Format qr.Format

	// Width and Height override the document's natural size. Zero keeps it;
	// setting only one preserves the aspect ratio.
	Width, Height int

	// Quality (1-100) applies to JPEG. PNG and WebP are lossless.
	Quality int
}

// Default is the standard engine.
type Default struct{}

// New returns the standard engine.
func New() *Default {
	return &Default{}
}

// Ensure Default implements Engine.
var _ Engine = (*Default)(nil)
