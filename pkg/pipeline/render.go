package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/qrforge/pkg/engine"
	"github.com/matzehuels/qrforge/pkg/observability"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// renderTracked wraps render with pipeline hooks.
func (r *Runner) renderTracked(ctx context.Context, c *call, format qr.Format, co callOptions) (*Result, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, string(format))

	res, err := r.render(ctx, c, format, co)

	var tag string
	var hit bool
	if res != nil {
		tag, hit = res.Tag, res.CacheHit
	}
	observability.Pipeline().OnRenderComplete(ctx, string(format), tag, hit, time.Since(start), err)
	return res, err
}

// render produces one format for c, through the cache when enabled.
func (r *Runner) render(ctx context.Context, c *call, format qr.Format, co callOptions) (*Result, error) {
	p, err := selectPath(format, !c.req.Logo.IsZero(), co.quality)
	if err != nil {
		return nil, err
	}
	if p.strategy != strategyRaster {
		return r.vector(ctx, c)
	}

	res := r.newResult(c, format, p)
	if c.store != nil {
		res.Key = r.Keyer.RenderKey(c.req.KeyOpts(), p.tag)
		data, hit, err := r.lookup(ctx, c, res.Key, p)
		if err != nil {
			return nil, err
		}
		if hit {
			res.Data, res.CacheHit = data, true
			return res, nil
		}
	}

	vec, err := r.vector(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := r.Engine.Rasterize(ctx, []byte(vec.Markup), engine.RasterOptions{
		Format:  format,
		Quality: co.quality,
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rasterized", "format", format, "tag", p.tag, "bytes", len(data))

	if c.store != nil {
		if err := r.store(ctx, c, res.Key, p, data); err != nil {
			return nil, err
		}
	}
	res.Data = data
	return res, nil
}

// vector returns the SVG for c, memoized per call and cached per fingerprint.
func (r *Runner) vector(ctx context.Context, c *call) (*Result, error) {
	if c.vector != nil {
		return c.vector, nil
	}

	p := vectorPath(!c.req.Logo.IsZero())
	res := r.newResult(c, qr.FormatSVG, p)

	if c.store != nil {
		res.Key = r.Keyer.RenderKey(c.req.KeyOpts(), p.tag)
		data, hit, err := r.lookup(ctx, c, res.Key, p)
		if err != nil {
			return nil, err
		}
		if hit {
			res.Markup, res.CacheHit = string(data), true
			c.vector = res
			return res, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec := engine.SpecFor(c.req)
	var (
		data []byte
		err  error
	)
	if p.strategy == strategyEngine {
		data, err = r.Engine.EncodeVector(ctx, spec)
	} else {
		data, err = engine.EncodeSVG(spec)
	}
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("encoded vector", "tag", p.tag, "bytes", len(data))

	if c.store != nil {
		if err := r.store(ctx, c, res.Key, p, data); err != nil {
			return nil, err
		}
	}
	res.Markup = string(data)
	c.vector = res
	return res, nil
}

func (r *Runner) newResult(c *call, format qr.Format, p renderPath) *Result {
	dim := c.req.Dimensions()
	return &Result{
		Format:  format,
		Tag:     p.tag,
		Width:   dim,
		Height:  dim,
		Notices: c.notices,
	}
}

func (r *Runner) lookup(ctx context.Context, c *call, key string, p renderPath) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, hit, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if hit {
		r.Logger.Debug("cache hit", "tag", p.tag, "key", key)
		observability.Cache().OnCacheHit(ctx, p.family())
	} else {
		r.Logger.Debug("cache miss", "tag", p.tag, "key", key)
		observability.Cache().OnCacheMiss(ctx, p.family())
	}
	return data, hit, nil
}

func (r *Runner) store(ctx context.Context, c *call, key string, p renderPath, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.store.Set(ctx, key, data, r.TTL); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, p.family(), len(data))
	return nil
}
