// Package symbol encodes text into a QR module matrix.
//
// The matrix contains only the symbol itself, without a quiet zone; callers
// add whatever margin their output needs. Encoding is delegated to gozxing.
package symbol

import (
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"

	"github.com/matzehuels/qrforge/pkg/errors"
)

// Level is an error-correction level as understood by the encoder.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

func (l Level) zxing() decoder.ErrorCorrectionLevel {
	switch l {
	case LevelL:
		return decoder.ErrorCorrectionLevel_L
	case LevelQ:
		return decoder.ErrorCorrectionLevel_Q
	case LevelH:
		return decoder.ErrorCorrectionLevel_H
	default:
		return decoder.ErrorCorrectionLevel_M
	}
}

// Matrix is a square grid of QR modules.
type Matrix struct {
	size int
	bits *gozxing.BitMatrix
}

// Encode builds the module matrix for text at the given level.
// Empty text and text exceeding symbol capacity fail with ENCODE_FAILED.
func Encode(text string, level Level) (*Matrix, error) {
	if text == "" {
		return nil, errors.New(errors.ErrCodeEncode, "cannot encode empty text")
	}

	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: level.zxing(),
		gozxing.EncodeHintType_MARGIN:           0,
		gozxing.EncodeHintType_CHARACTER_SET:    "UTF-8",
	}

	bits, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, 0, 0, hints)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode %d bytes of text", len(text))
	}
	return &Matrix{size: bits.GetWidth(), bits: bits}, nil
}

// Size returns the number of modules along one edge.
func (m *Matrix) Size() int { return m.size }

// Dark reports whether the module at column x, row y is dark.
// Coordinates outside the matrix are light.
func (m *Matrix) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.bits.Get(x, y)
}

// Run is a horizontal span of dark modules on one row.
type Run struct {
	X, Y, Len int
}

// Runs returns the dark modules merged into maximal horizontal spans,
// row by row from the top.
func (m *Matrix) Runs() []Run {
	var runs []Run
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; {
			if !m.Dark(x, y) {
				x++
				continue
			}
			start := x
			for x < m.size && m.Dark(x, y) {
				x++
			}
			runs = append(runs, Run{X: start, Y: y, Len: x - start})
		}
	}
	return runs
}
