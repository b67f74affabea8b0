package qr

import (
	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/logo"
)

// Option configures a Request built by [New].
type Option func(*Request)

// WithSize sets the symbol edge length in pixels.
func WithSize(size int) Option {
	return func(r *Request) { r.Size = size }
}

// WithMargin sets an explicit quiet zone in pixels.
func WithMargin(margin int) Option {
	return func(r *Request) { r.Margin = &margin }
}

// WithLogo sets the logo reference.
func WithLogo(src logo.Source) Option {
	return func(r *Request) { r.Logo = src }
}

// WithLogoPath references a logo file and sets its size ratio.
// A ratio of zero keeps the default.
func WithLogoPath(path string, ratio float64) Option {
	return func(r *Request) { r.SetLogo(logo.Path(path), ratio) }
}

// WithLogoBytes embeds an in-memory logo image and sets its size ratio.
// A ratio of zero keeps the default.
func WithLogoBytes(data []byte, ratio float64) Option {
	return func(r *Request) { r.SetLogo(logo.Bytes(data), ratio) }
}

// WithLogoSizeRatio sets the logo edge as a fraction of the symbol size.
func WithLogoSizeRatio(ratio float64) Option {
	return func(r *Request) { r.LogoSizeRatio = ratio }
}

// WithColors sets background and foreground colours.
func WithColors(background, foreground string) Option {
	return func(r *Request) { r.SetColors(background, foreground) }
}

// WithErrorCorrection sets the error-correction level.
func WithErrorCorrection(level ECLevel) Option {
	return func(r *Request) { r.ErrorCorrection = level }
}

// WithCache routes this request's renders through store instead of the
// renderer's own cache.
func WithCache(store cache.Cache) Option {
	return func(r *Request) { r.Cache.Store = store }
}

// WithoutCache disables caching for every render of this request.
func WithoutCache() Option {
	return func(r *Request) { r.Cache.Disabled = true }
}
