package symbol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qrforge/pkg/errors"
)

func TestEncodeVersion1(t *testing.T) {
	m, err := Encode("hello", LevelM)
	require.NoError(t, err)
	assert.Equal(t, 21, m.Size(), "short text fits in a version 1 symbol")

	// Finder pattern corners are dark; the separator next to them is light.
	assert.True(t, m.Dark(0, 0))
	assert.True(t, m.Dark(20, 0))
	assert.True(t, m.Dark(0, 20))
	assert.False(t, m.Dark(7, 0))
	assert.False(t, m.Dark(-1, 0))
	assert.False(t, m.Dark(21, 21))
}

func TestEncodeLevelsDiffer(t *testing.T) {
	low, err := Encode("https://example.com/some/longer/path", LevelL)
	require.NoError(t, err)
	high, err := Encode("https://example.com/some/longer/path", LevelH)
	require.NoError(t, err)
	assert.Greater(t, high.Size(), low.Size(), "higher correction needs more modules")
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode("", LevelM)
	assert.True(t, errors.Is(err, errors.ErrCodeEncode))

	_, err = Encode(strings.Repeat("x", 8000), LevelH)
	assert.True(t, errors.Is(err, errors.ErrCodeEncode))
}

func TestRunsCoverDarkModules(t *testing.T) {
	m, err := Encode("runs", LevelQ)
	require.NoError(t, err)

	dark := 0
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if m.Dark(x, y) {
				dark++
			}
		}
	}

	covered := 0
	for _, r := range m.Runs() {
		for i := 0; i < r.Len; i++ {
			require.True(t, m.Dark(r.X+i, r.Y))
		}
		assert.False(t, m.Dark(r.X+r.Len, r.Y), "runs are maximal")
		covered += r.Len
	}
	assert.Equal(t, dark, covered)
}
