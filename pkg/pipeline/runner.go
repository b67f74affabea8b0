package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/engine"
	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/logo"
	"github.com/matzehuels/qrforge/pkg/observability"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// Runner encapsulates QR rendering with caching.
// Both the CLI and library callers use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// render results itself. Multiple goroutines can safely use the same Runner
// with different requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine engine.Engine
	Logger *log.Logger

	// TTL is passed to the cache on every write.
	TTL time.Duration

	// OnNotice, when set, receives every notice raised by a call.
	OnNotice func(Notice)
}

// NewRunner creates a runner with the given collaborators.
// If c is nil, a fresh MemoryCache private to this runner is used.
// If keyer is nil, a DefaultKeyer is used.
// If eng is nil, the standard engine is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, eng engine.Engine, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if eng == nil {
		eng = engine.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Engine: eng,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// call is the per-call state shared by every format rendered for it.
type call struct {
	req     *qr.Request // snapshot with the effective logo
	store   cache.Cache // nil when caching is disabled
	notices []Notice

	// vector memoizes the SVG within one call so All renders it once.
	vector *Result
}

// begin snapshots req, resolves its logo and picks the store.
func (r *Runner) begin(ctx context.Context, req *qr.Request, co callOptions) (*call, error) {
	if req == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil request")
	}
	snap := req.Clone()

	c := &call{req: snap}
	effective, msg := logo.Resolve(snap.Logo)
	snap.Logo = effective
	if msg != "" {
		n := Notice{Level: "warn", Code: errors.ErrCodeLogoNotFound, Message: msg}
		c.notices = append(c.notices, n)
		r.Logger.Warn(msg)
		observability.Pipeline().OnNotice(ctx, string(n.Code))
		if r.OnNotice != nil {
			r.OnNotice(n)
		}
	}

	if !snap.Cache.Disabled && !co.noCache {
		c.store = snap.Cache.Store
		if c.store == nil {
			c.store = r.Cache
		}
	}
	return c, nil
}

// Render produces req in format.
func (r *Runner) Render(ctx context.Context, req *qr.Request, format qr.Format, opts ...CallOption) (*Result, error) {
	co := newCallOptions(opts)
	c, err := r.begin(ctx, req, co)
	if err != nil {
		return nil, err
	}
	return r.renderTracked(ctx, c, format, co)
}

// SVG renders req as SVG markup.
func (r *Runner) SVG(ctx context.Context, req *qr.Request, opts ...CallOption) (*Result, error) {
	return r.Render(ctx, req, qr.FormatSVG, opts...)
}

// PNG renders req as PNG.
func (r *Runner) PNG(ctx context.Context, req *qr.Request, opts ...CallOption) (*Result, error) {
	return r.Render(ctx, req, qr.FormatPNG, opts...)
}

// JPEG renders req as JPEG.
func (r *Runner) JPEG(ctx context.Context, req *qr.Request, opts ...CallOption) (*Result, error) {
	return r.Render(ctx, req, qr.FormatJPEG, opts...)
}

// WebP renders req as lossless WebP.
func (r *Runner) WebP(ctx context.Context, req *qr.Request, opts ...CallOption) (*Result, error) {
	return r.Render(ctx, req, qr.FormatWebP, opts...)
}

// All renders every format from one snapshot of req. The logo is resolved
// once, so a missing logo yields a single notice for the whole bundle.
func (r *Runner) All(ctx context.Context, req *qr.Request, opts ...CallOption) (*Bundle, error) {
	co := newCallOptions(opts)
	c, err := r.begin(ctx, req, co)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Notices: c.notices}
	for _, f := range qr.Formats {
		res, err := r.renderTracked(ctx, c, f, co)
		if err != nil {
			return nil, err
		}
		switch f {
		case qr.FormatSVG:
			b.SVG = res
		case qr.FormatPNG:
			b.PNG = res
		case qr.FormatJPEG:
			b.JPEG = res
		case qr.FormatWebP:
			b.WebP = res
		}
	}
	b.Width, b.Height = b.SVG.Width, b.SVG.Height
	return b, nil
}

// Fingerprint returns the cache key a Render call with the same arguments
// would use. The logo is resolved first, so a missing file yields the
// logo-less key. No notice is raised.
func (r *Runner) Fingerprint(req *qr.Request, format qr.Format, opts ...CallOption) (string, error) {
	if req == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "nil request")
	}
	co := newCallOptions(opts)
	snap := req.Clone()
	snap.Logo, _ = logo.Resolve(snap.Logo)

	p, err := selectPath(format, !snap.Logo.IsZero(), co.quality)
	if err != nil {
		return "", err
	}
	return r.Keyer.RenderKey(snap.KeyOpts(), p.tag), nil
}

// Convert rasterizes arbitrary SVG markup. It never touches the cache.
func (r *Runner) Convert(ctx context.Context, svg []byte, format qr.Format, opts ConvertOptions) ([]byte, error) {
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	return r.Engine.Rasterize(ctx, svg, engine.RasterOptions{
		Format:  format,
		Width:   opts.Width,
		Height:  opts.Height,
		Quality: opts.Quality,
	})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// GenerateSVG renders text as SVG with a throwaway, uncached runner.
func GenerateSVG(ctx context.Context, text string, opts ...qr.Option) (*Result, error) {
	return throwaway().SVG(ctx, qr.New(text, opts...))
}

// GeneratePNG renders text as PNG with a throwaway, uncached runner.
func GeneratePNG(ctx context.Context, text string, opts ...qr.Option) (*Result, error) {
	return throwaway().PNG(ctx, qr.New(text, opts...))
}

// throwaway returns a runner whose cache could never be hit again.
func throwaway() *Runner {
	return NewRunner(cache.NewNullCache(), nil, nil, nil)
}
