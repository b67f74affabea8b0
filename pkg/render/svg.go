package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrforge/pkg/symbol"
)

// SVGOption configures EncodeSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	size       int
	margin     int
	dimensions bool
	bg, fg     color.RGBA
	logo       image.Image
	logoRatio  float64
}

// WithSize sets the symbol edge in pixels, excluding the margin.
func WithSize(px int) SVGOption { return func(r *svgRenderer) { r.size = px } }

// WithMargin sets the quiet zone in pixels.
func WithMargin(px int) SVGOption { return func(r *svgRenderer) { r.margin = px } }

// WithDimensions writes width and height attributes in addition to the viewBox.
func WithDimensions() SVGOption { return func(r *svgRenderer) { r.dimensions = true } }

// WithColors sets the background and dark-module colours.
func WithColors(bg, fg color.RGBA) SVGOption {
	return func(r *svgRenderer) { r.bg, r.fg = bg, fg }
}

// WithLogo centres img over the symbol, fitted into a square of
// ratio times the symbol size.
func WithLogo(img image.Image, ratio float64) SVGOption {
	return func(r *svgRenderer) { r.logo, r.logoRatio = img, ratio }
}

// EncodeSVG writes m as an SVG document whose viewBox is
// size+2*margin on each side.
func EncodeSVG(m *symbol.Matrix, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{
		size: 200,
		bg:   color.RGBA{0xff, 0xff, 0xff, 0xff},
		fg:   color.RGBA{0, 0, 0, 0xff},
	}
	for _, opt := range opts {
		opt(&r)
	}

	total := r.size + 2*r.margin
	unit := float64(r.size) / float64(m.Size())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d"`, total, total)
	if r.dimensions {
		fmt.Fprintf(&buf, ` width="%d" height="%d"`, total, total)
	}
	buf.WriteString(` shape-rendering="crispEdges">` + "\n")

	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", total, total, CSS(r.bg))

	buf.WriteString(`<path d="`)
	off := float64(r.margin)
	for _, run := range m.Runs() {
		fmt.Fprintf(&buf, "M%s %sh%sv%sh-%sz",
			num(off+float64(run.X)*unit), num(off+float64(run.Y)*unit),
			num(float64(run.Len)*unit), num(unit), num(float64(run.Len)*unit))
	}
	fmt.Fprintf(&buf, `" fill="%s"/>`+"\n", CSS(r.fg))

	if r.logo != nil {
		if err := r.renderLogo(&buf); err != nil {
			return nil, err
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// renderLogo writes a background plate and the fitted logo image.
func (r *svgRenderer) renderLogo(buf *bytes.Buffer) error {
	box := int(math.Round(float64(r.size) * r.logoRatio))
	if box < 1 {
		box = 1
	}
	fitted := fitInside(r.logo, box)
	w, h := fitted.Bounds().Dx(), fitted.Bounds().Dy()

	var png bytes.Buffer
	if err := imaging.Encode(&png, fitted, imaging.PNG); err != nil {
		return err
	}

	x := float64(r.margin) + float64(r.size-w)/2
	y := float64(r.margin) + float64(r.size-h)/2
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%d" height="%d" fill="%s"/>`+"\n",
		num(x), num(y), w, h, CSS(r.bg))
	fmt.Fprintf(buf, `<image x="%s" y="%s" width="%d" height="%d" href="data:image/png;base64,%s"/>`+"\n",
		num(x), num(y), w, h, base64.StdEncoding.EncodeToString(png.Bytes()))
	return nil
}

// fitInside scales img, up or down, so its longer side equals box.
func fitInside(img image.Image, box int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = int(math.Max(1, math.Round(float64(h)*float64(box)/float64(w))))
		w = box
	} else {
		w = int(math.Max(1, math.Round(float64(w)*float64(box)/float64(h))))
		h = box
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// num formats f with at most three decimals and no trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}
