package errors

import (
	"strings"
	"unicode"
)

// Quality bounds for lossy raster encoders.
const (
	MinQuality = 1
	MaxQuality = 100
)

// ValidateSize checks that a symbol edge length is a positive pixel count.
func ValidateSize(size int) error {
	if size <= 0 {
		return New(ErrCodeInvalidInput, "size must be a positive number of pixels, got %d", size)
	}
	return nil
}

// ValidateMargin checks an explicit quiet-zone width. Zero is allowed.
func ValidateMargin(margin int) error {
	if margin < 0 {
		return New(ErrCodeInvalidInput, "margin cannot be negative, got %d", margin)
	}
	return nil
}

// ValidateLogoSizeRatio checks that ratio lies strictly between 0 and 1.
func ValidateLogoSizeRatio(ratio float64) error {
	if !(ratio > 0 && ratio < 1) {
		return New(ErrCodeInvalidInput, "logo size ratio must be in (0,1), got %g", ratio)
	}
	return nil
}

// ValidateQuality checks that a raster quality lies in [MinQuality, MaxQuality].
func ValidateQuality(q int) error {
	if q < MinQuality || q > MaxQuality {
		return New(ErrCodeInvalidQuality, "quality must be between %d and %d, got %d", MinQuality, MaxQuality, q)
	}
	return nil
}

// ValidateOutputPath validates a destination file path for the file-writing
// helpers. Unlike repository paths, absolute paths are fine here.
//
// Validation rules:
//   - Path cannot be empty or only whitespace
//   - No null bytes or control characters
//   - Path cannot end in a separator (it must name a file)
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, got directory %q", path)
	}

	return nil
}
