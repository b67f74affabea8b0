package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// Render path tags.
const (
	TagVectorDirect = "vector-svg"
	TagVectorEngine = "engine-svg"
	tagRasterPrefix = "raster-"
)

// strategy is how a path produces its bytes.
type strategy int

const (
	strategyDirect strategy = iota // local vector encoder
	strategyEngine                 // engine vector encoder, with logo
	strategyRaster                 // vector then engine rasterizer
)

// renderPath is a chosen strategy and its fingerprint tag.
type renderPath struct {
	strategy strategy
	tag      string
}

// family groups tags for metrics: vector, engine or raster.
func (p renderPath) family() string {
	f, _, _ := strings.Cut(p.tag, "-")
	return f
}

// RasterTag returns the tag of a raster path. Quality is part of every raster
// tag, lossless formats included.
func RasterTag(format qr.Format, quality int) string {
	return tagRasterPrefix + string(format) + ":" + strconv.Itoa(quality)
}

// vectorPath selects the SVG path for a request.
func vectorPath(hasLogo bool) renderPath {
	if hasLogo {
		return renderPath{strategy: strategyEngine, tag: TagVectorEngine}
	}
	return renderPath{strategy: strategyDirect, tag: TagVectorDirect}
}

// selectPath picks the render path for format. hasLogo refers to the
// effective logo, after missing files have been dropped.
func selectPath(format qr.Format, hasLogo bool, quality int) (renderPath, error) {
	switch format {
	case qr.FormatSVG:
		return vectorPath(hasLogo), nil
	case qr.FormatPNG, qr.FormatJPEG, qr.FormatWebP:
		if err := errors.ValidateQuality(quality); err != nil {
			return renderPath{}, err
		}
		return renderPath{strategy: strategyRaster, tag: RasterTag(format, quality)}, nil
	}
	return renderPath{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}
