package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/logo"
)

func TestNewDefaults(t *testing.T) {
	r := New("hello")

	assert.Equal(t, "hello", r.Text)
	assert.Equal(t, 200, r.Size)
	assert.Nil(t, r.Margin)
	assert.False(t, r.HasMargin())
	assert.True(t, r.Logo.IsZero())
	assert.Equal(t, 0.2, r.LogoSizeRatio)
	assert.Equal(t, "#FFFFFF", r.BackgroundColor)
	assert.Equal(t, "#000000", r.ForegroundColor)
	assert.Equal(t, Medium, r.ErrorCorrection)
	assert.False(t, r.Cache.Disabled)
	assert.Nil(t, r.Cache.Store)
}

func TestOptions(t *testing.T) {
	store := cache.NewNullCache()
	r := New("x",
		WithSize(300),
		WithMargin(0),
		WithLogoPath("logo.png", 0.3),
		WithColors("white", "navy"),
		WithErrorCorrection(High),
		WithCache(store),
		WithoutCache(),
	)

	assert.Equal(t, 300, r.Size)
	require.NotNil(t, r.Margin)
	assert.Equal(t, 0, *r.Margin, "explicit zero margin is kept")
	assert.Equal(t, logo.KindPath, r.Logo.Kind())
	assert.Equal(t, 0.3, r.LogoSizeRatio)
	assert.Equal(t, "white", r.BackgroundColor)
	assert.Equal(t, "navy", r.ForegroundColor)
	assert.Equal(t, High, r.ErrorCorrection)
	assert.Same(t, store, r.Cache.Store)
	assert.True(t, r.Cache.Disabled)
}

func TestWithLogoZeroRatioKeepsDefault(t *testing.T) {
	r := New("x", WithLogoBytes([]byte("png"), 0))
	assert.Equal(t, DefaultLogoSizeRatio, r.LogoSizeRatio)
	assert.Equal(t, logo.KindBuffer, r.Logo.Kind())
}

func TestChainableSetters(t *testing.T) {
	r := New("x").
		SetSize(150).
		SetMargin(8).
		SetLogo(logo.Path("a.png"), 0.25).
		SetColors("", "red").
		SetErrorCorrection(Quartile)

	assert.Equal(t, 150, r.Size)
	assert.Equal(t, 8, *r.Margin)
	assert.Equal(t, "a.png", r.Logo.Path())
	assert.Equal(t, 0.25, r.LogoSizeRatio)
	assert.Equal(t, DefaultBackground, r.BackgroundColor, "empty colour keeps current value")
	assert.Equal(t, "red", r.ForegroundColor)
	assert.Equal(t, Quartile, r.ErrorCorrection)

	r.ClearMargin()
	assert.Nil(t, r.Margin)
}

func TestCloneIsIndependent(t *testing.T) {
	orig := New("x", WithMargin(4), WithLogoBytes([]byte("abc"), 0.2))
	c := orig.Clone()

	*orig.Margin = 99
	orig.Text = "changed"
	orig.Logo = logo.None()

	assert.Equal(t, 4, *c.Margin)
	assert.Equal(t, "x", c.Text)
	assert.Equal(t, []byte("abc"), c.Logo.Data())

	var nilReq *Request
	assert.Nil(t, nilReq.Clone())
}

func TestKeyOpts(t *testing.T) {
	a := New("x").KeyOpts()
	b := New("x", WithMargin(0)).KeyOpts()
	assert.Nil(t, a.Margin)
	require.NotNil(t, b.Margin)

	k := cache.NewDefaultKeyer()
	assert.NotEqual(t, k.RenderKey(a, "vector-svg"), k.RenderKey(b, "vector-svg"),
		"unset and zero margin must not share a key")

	withStore := New("x", WithCache(cache.NewNullCache()), WithoutCache()).KeyOpts()
	assert.Equal(t, a, withStore, "cache policy never reaches the key")
}

func TestParseECLevel(t *testing.T) {
	tests := []struct {
		in   string
		want ECLevel
	}{
		{"L", Low}, {"low", Low},
		{"m", Medium}, {"Medium", Medium},
		{"Q", Quartile}, {"quartile", Quartile},
		{"h", High}, {" HIGH ", High},
	}
	for _, tt := range tests {
		got, err := ParseECLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseECLevel("x")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"svg", FormatSVG},
		{"PNG", FormatPNG},
		{"jpg", FormatJPEG},
		{"jpeg", FormatJPEG},
		{"webp", FormatWebP},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("gif")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestFormatHelpers(t *testing.T) {
	assert.False(t, FormatSVG.IsRaster())
	assert.True(t, FormatPNG.IsRaster())
	assert.True(t, FormatJPEG.IsRaster())
	assert.True(t, FormatWebP.IsRaster())
	assert.Equal(t, ".jpg", FormatJPEG.Ext())
	assert.Equal(t, ".webp", FormatWebP.Ext())
	assert.Equal(t, "H", High.String())
	assert.False(t, ECLevel(9).Valid())
}

func TestQuietZone(t *testing.T) {
	assert.Equal(t, 20, New("x").QuietZone())
	assert.Equal(t, 240, New("x").Dimensions())
	assert.Equal(t, 240, New("hello", WithSize(200), WithMargin(20)).Dimensions())
	assert.Equal(t, 200, New("x", WithMargin(0)).Dimensions())
	assert.Equal(t, 13, DefaultMargin(125))
}
