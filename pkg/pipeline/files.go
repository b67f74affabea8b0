package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// WriteFile renders req in format and writes it to path, creating missing
// parent directories. The file is replaced atomically.
func (r *Runner) WriteFile(ctx context.Context, req *qr.Request, format qr.Format, path string, opts ...CallOption) (*Result, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	res, err := r.Render(ctx, req, format, opts...)
	if err != nil {
		return nil, err
	}
	if err := WriteAtomic(ctx, path, res.Bytes()); err != nil {
		return nil, err
	}
	r.Logger.Debug("wrote file", "path", path, "format", format, "cache_hit", res.CacheHit)
	return res, nil
}

// SVGFile writes req as SVG to path.
func (r *Runner) SVGFile(ctx context.Context, req *qr.Request, path string, opts ...CallOption) (*Result, error) {
	return r.WriteFile(ctx, req, qr.FormatSVG, path, opts...)
}

// PNGFile writes req as PNG to path.
func (r *Runner) PNGFile(ctx context.Context, req *qr.Request, path string, opts ...CallOption) (*Result, error) {
	return r.WriteFile(ctx, req, qr.FormatPNG, path, opts...)
}

// JPEGFile writes req as JPEG to path.
func (r *Runner) JPEGFile(ctx context.Context, req *qr.Request, path string, opts ...CallOption) (*Result, error) {
	return r.WriteFile(ctx, req, qr.FormatJPEG, path, opts...)
}

// WebPFile writes req as WebP to path.
func (r *Runner) WebPFile(ctx context.Context, req *qr.Request, path string, opts ...CallOption) (*Result, error) {
	return r.WriteFile(ctx, req, qr.FormatWebP, path, opts...)
}

// WriteAtomic writes data to a uniquely named temporary file next to path
// and renames it into place.
func WriteAtomic(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory %s", dir)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
