package qr

import (
	"strings"

	"github.com/matzehuels/qrforge/pkg/errors"
)

// ECLevel is the error-correction level of a symbol.
type ECLevel int

const (
	Low      ECLevel = iota // ~7% recovery
	Medium                  // ~15% recovery
	Quartile                // ~25% recovery
	High                    // ~30% recovery
)

// String returns the single-letter level name (L, M, Q, H).
func (l ECLevel) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return "?"
	}
}

// Valid reports whether l is one of the four defined levels.
func (l ECLevel) Valid() bool {
	return l >= Low && l <= High
}

// ParseECLevel parses a level name. Letters and full names are accepted in
// any case.
func ParseECLevel(s string) (ECLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "m", "medium":
		return Medium, nil
	case "q", "quartile":
		return Quartile, nil
	case "h", "high":
		return High, nil
	}
	return Medium, errors.New(errors.ErrCodeInvalidInput, "unknown error correction level %q (want L, M, Q or H)", s)
}

// Format is an output encoding.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// Formats lists every supported output format.
var Formats = []Format{FormatSVG, FormatPNG, FormatJPEG, FormatWebP}

// IsRaster reports whether f is a pixel format.
func (f Format) IsRaster() bool {
	return f == FormatPNG || f == FormatJPEG || f == FormatWebP
}

// Ext returns the conventional file extension including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ParseFormat parses a format name; "jpg" is an alias for jpeg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png, jpeg or webp)", s)
}
