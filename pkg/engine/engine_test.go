package engine

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/logo"
	"github.com/matzehuels/qrforge/pkg/qr"
)

func intPtr(v int) *int { return &v }

func pngLogo(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(8, 8, color.RGBA{200, 0, 0, 255}), imaging.PNG))
	return buf.Bytes()
}

func baseSpec() VectorSpec {
	return SpecFor(qr.New("hello", qr.WithMargin(20)))
}

func TestEncodeVector(t *testing.T) {
	ctx := context.Background()
	e := New()

	svg, err := e.EncodeVector(ctx, baseSpec())
	require.NoError(t, err)
	assert.Contains(t, string(svg), `viewBox="0 0 240 240" width="240" height="240"`)
	assert.NotContains(t, string(svg), "<image")

	spec := baseSpec()
	spec.Logo = logo.Bytes(pngLogo(t))
	svg, err = e.EncodeVector(ctx, spec)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<image")
}

func TestEncodeVectorLogoFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, imaging.Save(imaging.New(8, 8, color.Black), path))

	spec := baseSpec()
	spec.Logo = logo.Path(path)
	svg, err := New().EncodeVector(context.Background(), spec)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "data:image/png;base64,")
}

func TestEncodeSVGUnsetMargin(t *testing.T) {
	svg, err := EncodeSVG(SpecFor(qr.New("hello")))
	require.NoError(t, err)
	assert.Contains(t, string(svg), `viewBox="0 0 240 240" shape-rendering`)
}

func TestEncodeVectorErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VectorSpec)
		code   errors.Code
	}{
		{"bad background", func(s *VectorSpec) { s.Background = "nope" }, errors.ErrCodeInvalidColor},
		{"bad foreground", func(s *VectorSpec) { s.Foreground = "#12" }, errors.ErrCodeInvalidColor},
		{"zero size", func(s *VectorSpec) { s.Size = 0 }, errors.ErrCodeInvalidInput},
		{"negative margin", func(s *VectorSpec) { s.Margin = intPtr(-1) }, errors.ErrCodeInvalidInput},
		{"bad level", func(s *VectorSpec) { s.Level = qr.ECLevel(7) }, errors.ErrCodeInvalidInput},
		{"empty text", func(s *VectorSpec) { s.Text = "" }, errors.ErrCodeEncode},
		{"corrupt logo", func(s *VectorSpec) { s.Logo = logo.Bytes([]byte("garbage")) }, errors.ErrCodeInvalidLogo},
		{"unreadable logo", func(s *VectorSpec) { s.Logo = logo.Path("/nonexistent/logo.png") }, errors.ErrCodeInvalidLogo},
		{"ratio too large", func(s *VectorSpec) {
			s.Logo = logo.Bytes([]byte("x"))
			s.LogoSizeRatio = 1.5
		}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := baseSpec()
			tt.mutate(&spec)
			_, err := New().EncodeVector(context.Background(), spec)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}
}

func TestRatioIgnoredWithoutLogo(t *testing.T) {
	spec := baseSpec()
	spec.LogoSizeRatio = 5
	_, err := New().EncodeVector(context.Background(), spec)
	assert.NoError(t, err)
}

func TestRasterize(t *testing.T) {
	ctx := context.Background()
	e := New()
	svg, err := e.EncodeVector(ctx, baseSpec())
	require.NoError(t, err)

	for _, f := range []qr.Format{qr.FormatPNG, qr.FormatJPEG, qr.FormatWebP} {
		t.Run(string(f), func(t *testing.T) {
			data, err := e.Rasterize(ctx, svg, RasterOptions{Format: f, Quality: 90})
			require.NoError(t, err)
			if f == qr.FormatWebP {
				assert.Equal(t, "RIFF", string(data[:4]))
				return
			}
			cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 240, cfg.Width)
			assert.Equal(t, 240, cfg.Height)
		})
	}

	data, err := e.Rasterize(ctx, svg, RasterOptions{Format: qr.FormatPNG, Width: 480, Quality: 90})
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Height)
}

func TestRasterizeErrors(t *testing.T) {
	ctx := context.Background()
	e := New()
	svg, _ := e.EncodeVector(ctx, baseSpec())

	_, err := e.Rasterize(ctx, svg, RasterOptions{Format: qr.FormatSVG, Quality: 90})
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))

	_, err = e.Rasterize(ctx, svg, RasterOptions{Format: qr.FormatJPEG, Quality: 0})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidQuality))

	_, err = e.Rasterize(ctx, []byte("<svg"), RasterOptions{Format: qr.FormatPNG, Quality: 90})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMarkup))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.Rasterize(cancelled, svg, RasterOptions{Format: qr.FormatPNG, Quality: 90})
	assert.ErrorIs(t, err, context.Canceled)
}
