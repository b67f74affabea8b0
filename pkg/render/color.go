package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/qrforge/pkg/errors"
)

// ParseColor parses a hex colour (#rgb or #rrggbb) or a CSS colour name.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}

	if strings.HasPrefix(v, "#") {
		if len(v) != 4 && len(v) != 7 {
			return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
		}
		c, err := colorful.Hex(strings.ToLower(v))
		if err != nil {
			return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	if c, ok := colornames.Map[strings.ToLower(v)]; ok {
		return c, nil
	}
	return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color %q", s)
}

// CSS formats c as an rgb() functional notation.
func CSS(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
