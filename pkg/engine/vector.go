package engine

import (
	"context"
	"os"

	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/logo"
	"github.com/matzehuels/qrforge/pkg/qr"
	"github.com/matzehuels/qrforge/pkg/render"
	"github.com/matzehuels/qrforge/pkg/symbol"
)

// EncodeVector draws spec, including its logo.
func (e *Default) EncodeVector(ctx context.Context, spec VectorSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts, m, err := prepare(spec)
	if err != nil {
		return nil, err
	}

	if !spec.Logo.IsZero() {
		if err := errors.ValidateLogoSizeRatio(spec.LogoSizeRatio); err != nil {
			return nil, err
		}
		data, err := logoBytes(spec.Logo)
		if err != nil {
			return nil, err
		}
		img, err := render.DecodeImage(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithLogo(img, spec.LogoSizeRatio))
	}
	return render.EncodeSVG(m, opts...)
}

// EncodeSVG draws spec without a logo. It is the direct vector path: no
// engine instance, no image decoding.
func EncodeSVG(spec VectorSpec) ([]byte, error) {
	opts, m, err := prepare(spec)
	if err != nil {
		return nil, err
	}
	return render.EncodeSVG(m, opts...)
}

// prepare validates spec and encodes its symbol.
func prepare(spec VectorSpec) ([]render.SVGOption, *symbol.Matrix, error) {
	if err := errors.ValidateSize(spec.Size); err != nil {
		return nil, nil, err
	}
	margin := qr.DefaultMargin(spec.Size)
	if spec.Margin != nil {
		if err := errors.ValidateMargin(*spec.Margin); err != nil {
			return nil, nil, err
		}
		margin = *spec.Margin
	}
	if !spec.Level.Valid() {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "invalid error correction level %d", int(spec.Level))
	}

	bg, err := render.ParseColor(spec.Background)
	if err != nil {
		return nil, nil, err
	}
	fg, err := render.ParseColor(spec.Foreground)
	if err != nil {
		return nil, nil, err
	}

	m, err := symbol.Encode(spec.Text, symbolLevel(spec.Level))
	if err != nil {
		return nil, nil, err
	}

	opts := []render.SVGOption{
		render.WithSize(spec.Size),
		render.WithMargin(margin),
		render.WithColors(bg, fg),
	}
	if spec.Margin != nil {
		opts = append(opts, render.WithDimensions())
	}
	return opts, m, nil
}

func symbolLevel(l qr.ECLevel) symbol.Level {
	switch l {
	case qr.Low:
		return symbol.LevelL
	case qr.Quartile:
		return symbol.LevelQ
	case qr.High:
		return symbol.LevelH
	default:
		return symbol.LevelM
	}
}

func logoBytes(src logo.Source) ([]byte, error) {
	switch src.Kind() {
	case logo.KindBuffer:
		return src.Data(), nil
	case logo.KindPath:
		data, err := os.ReadFile(src.Path())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLogo, err, "read logo %s", src.Path())
		}
		return data, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidLogo, "no logo")
}
