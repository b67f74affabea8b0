package engine

import (
	"context"

	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/qr"
	"github.com/matzehuels/qrforge/pkg/render"
)

// Rasterize converts svg to opts.Format.
func (e *Default) Rasterize(ctx context.Context, svg []byte, opts RasterOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !opts.Format.IsRaster() {
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot rasterize to %q", opts.Format)
	}
	if err := errors.ValidateQuality(opts.Quality); err != nil {
		return nil, err
	}
	if opts.Width < 0 || opts.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster dimensions cannot be negative")
	}

	img, err := render.Rasterize(svg, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case qr.FormatPNG:
		return render.EncodePNG(img)
	case qr.FormatJPEG:
		return render.EncodeJPEG(img, opts.Quality)
	default:
		return render.EncodeWebP(img)
	}
}
