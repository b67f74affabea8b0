package render

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/qrforge/pkg/errors"
)

// svgDoc captures the parts of a document oksvg does not draw.
type svgDoc struct {
	XMLName xml.Name   `xml:"svg"`
	Images  []svgImage `xml:"image"`
}

type svgImage struct {
	X      string     `xml:"x,attr"`
	Y      string     `xml:"y,attr"`
	Width  string     `xml:"width,attr"`
	Height string     `xml:"height,attr"`
	Attrs  []xml.Attr `xml:",any,attr"`
}

func (im svgImage) href() string {
	for _, a := range im.Attrs {
		if a.Name.Local == "href" {
			return a.Value
		}
	}
	return ""
}

// Rasterize draws svg onto a canvas of width by height pixels. A zero
// dimension is taken from the document's viewBox, keeping its aspect ratio
// when only one side is given.
func Rasterize(svg []byte, width, height int) (*image.NRGBA, error) {
	var doc svgDoc
	if err := xml.Unmarshal(svg, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "parse svg")
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "read svg")
	}

	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "svg has no usable viewBox or dimensions")
	}

	w, h := targetSize(vb.W, vb.H, width, height)

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	out := imaging.Clone(canvas)
	sx, sy := float64(w)/vb.W, float64(h)/vb.H
	for _, im := range doc.Images {
		out, err = overlayImage(out, im, vb.X, vb.Y, sx, sy)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func targetSize(vbW, vbH float64, width, height int) (int, int) {
	switch {
	case width > 0 && height > 0:
		return width, height
	case width > 0:
		return width, max(1, int(math.Round(float64(width)*vbH/vbW)))
	case height > 0:
		return max(1, int(math.Round(float64(height)*vbW/vbH))), height
	default:
		return max(1, int(math.Round(vbW))), max(1, int(math.Round(vbH)))
	}
}

// overlayImage composites one <image> element. Only data URIs are drawn;
// external references are skipped.
func overlayImage(dst *image.NRGBA, im svgImage, ox, oy, sx, sy float64) (*image.NRGBA, error) {
	href := im.href()
	if !strings.HasPrefix(href, "data:") {
		return dst, nil
	}
	comma := strings.IndexByte(href, ',')
	if comma < 0 || !strings.Contains(href[:comma], ";base64") {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "unsupported image data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(href[comma+1:])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "decode embedded image")
	}
	img, err := DecodeImage(raw)
	if err != nil {
		return nil, err
	}

	x, y := attrFloat(im.X), attrFloat(im.Y)
	w, h := attrFloat(im.Width), attrFloat(im.Height)
	if w <= 0 || h <= 0 {
		b := img.Bounds()
		w, h = float64(b.Dx()), float64(b.Dy())
	}

	pw := max(1, int(math.Round(w*sx)))
	ph := max(1, int(math.Round(h*sy)))
	scaled := imaging.Resize(img, pw, ph, imaging.Lanczos)
	pos := image.Pt(int(math.Round((x-ox)*sx)), int(math.Round((y-oy)*sy)))
	return imaging.Overlay(dst, scaled, pos, 1.0), nil
}

func attrFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil {
		return 0
	}
	return f
}

// DecodeImage decodes PNG, JPEG, GIF, WebP, BMP or TIFF bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLogo, err, "decode image")
	}
	return img, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// EncodeJPEG flattens img onto white and encodes it as JPEG at quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if err := errors.ValidateQuality(quality); err != nil {
		return nil, err
	}
	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}

// EncodeWebP encodes img as lossless WebP.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode webp")
	}
	return buf.Bytes(), nil
}
