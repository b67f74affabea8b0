package qr

import (
	"math"

	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/logo"
)

// Defaults applied by [New].
const (
	DefaultSize          = 200
	DefaultLogoSizeRatio = 0.2
	DefaultBackground    = "#FFFFFF"
	DefaultForeground    = "#000000"
	DefaultECLevel       = Medium
)

// CachePolicy controls whether and where renders of a request are cached.
type CachePolicy struct {
	// Disabled bypasses the cache entirely: no lookup and no store.
	Disabled bool

	// Store overrides the renderer's own cache when non-nil.
	Store cache.Cache
}

// Request describes one QR symbol to render.
type Request struct {
	// Text is the payload to encode. It must be non-empty: rendering empty
	// text fails with ErrCodeEncode (ENCODE_FAILED).
	Text string
	Size int

	// Margin is the quiet zone in pixels. Nil leaves the choice to the
	// engine; an explicit 0 renders without a quiet zone.
	Margin *int

	Logo          logo.Source
	LogoSizeRatio float64

	BackgroundColor string
	ForegroundColor string
	ErrorCorrection ECLevel

	Cache CachePolicy
}

// New returns a request for text with every default applied, then opts.
func New(text string, opts ...Option) *Request {
	r := &Request{
		Text:            text,
		Size:            DefaultSize,
		LogoSizeRatio:   DefaultLogoSizeRatio,
		BackgroundColor: DefaultBackground,
		ForegroundColor: DefaultForeground,
		ErrorCorrection: DefaultECLevel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clone returns a deep copy of r. Logo bytes and the margin pointer are not
// shared; the cache store is shared by reference.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	c := *r
	if r.Margin != nil {
		m := *r.Margin
		c.Margin = &m
	}
	c.Logo = r.Logo.Clone()
	return &c
}

// HasMargin reports whether an explicit margin is set.
func (r *Request) HasMargin() bool {
	return r.Margin != nil
}

// SetSize sets the symbol edge length in pixels.
func (r *Request) SetSize(size int) *Request {
	r.Size = size
	return r
}

// SetMargin sets an explicit quiet zone in pixels.
func (r *Request) SetMargin(margin int) *Request {
	r.Margin = &margin
	return r
}

// ClearMargin returns the margin to unset.
func (r *Request) ClearMargin() *Request {
	r.Margin = nil
	return r
}

// SetLogo sets the logo and its size relative to the symbol.
// A ratio of zero keeps the current ratio.
func (r *Request) SetLogo(src logo.Source, ratio float64) *Request {
	r.Logo = src
	if ratio != 0 {
		r.LogoSizeRatio = ratio
	}
	return r
}

// SetColors sets the background and foreground colours. Empty strings keep
// the current value.
func (r *Request) SetColors(background, foreground string) *Request {
	if background != "" {
		r.BackgroundColor = background
	}
	if foreground != "" {
		r.ForegroundColor = foreground
	}
	return r
}

// SetErrorCorrection sets the error-correction level.
func (r *Request) SetErrorCorrection(level ECLevel) *Request {
	r.ErrorCorrection = level
	return r
}

// KeyOpts returns the fields of r that determine output bytes, in the form
// consumed by a [cache.Keyer].
func (r *Request) KeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Text:          r.Text,
		Size:          r.Size,
		Margin:        r.Margin,
		Logo:          r.Logo.Identity(),
		LogoSizeRatio: r.LogoSizeRatio,
		Background:    r.BackgroundColor,
		Foreground:    r.ForegroundColor,
		ECLevel:       r.ErrorCorrection.String(),
	}
}

// DefaultMargin returns the quiet zone used when no margin is set:
// one tenth of the symbol size, rounded to the nearest pixel.
func DefaultMargin(size int) int {
	return int(math.Round(float64(size) / 10))
}

// QuietZone returns the explicit margin, or [DefaultMargin] when unset.
func (r *Request) QuietZone() int {
	if r.Margin != nil {
		return *r.Margin
	}
	return DefaultMargin(r.Size)
}

// Dimensions returns the edge length of the rendered image, margin included.
func (r *Request) Dimensions() int {
	return r.Size + 2*r.QuietZone()
}
