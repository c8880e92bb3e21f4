package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-converter/internal/util"
)

func TestOptimize_Shrinks(t *testing.T) {
	data, err := util.CreateTestPNG(400, 200, color.RGBA{200, 10, 10, 255})
	require.NoError(t, err)

	img, err := Optimize(data, 100, 80)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Width)
	assert.Equal(t, 50, img.Height)

	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), decoded.Bounds())
}

func TestOptimize_NeverEnlarges(t *testing.T) {
	data, err := util.CreateTestJPEG(40, 30, color.White)
	require.NoError(t, err)

	img, err := Optimize(data, 1920, 80)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 30, img.Height)
}

func TestOptimize_FlattensTransparency(t *testing.T) {
	data, err := util.CreateTestPNG(10, 10, color.RGBA{0, 0, 0, 0})
	require.NoError(t, err)

	img, err := Optimize(data, 0, 90)
	require.NoError(t, err)
	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)

	r, g, b, _ := decoded.At(5, 5).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestOptimize_Invalid(t *testing.T) {
	_, err := Optimize([]byte("nope"), 100, 80)
	assert.Error(t, err)
}

// hugeJPEG returns a small JPEG whose frame header claims 65535x65535 pixels
func hugeJPEG(t *testing.T) []byte {
	t.Helper()
	data, err := util.CreateTestJPEG(8, 8, color.White)
	require.NoError(t, err)

	sof := bytes.Index(data, []byte{0xFF, 0xC0})
	require.Greater(t, sof, 0)
	copy(data[sof+5:], []byte{0xFF, 0xFF, 0xFF, 0xFF})
	return data
}

func TestOptimize_RejectsOversized(t *testing.T) {
	data := hugeJPEG(t)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 65535, cfg.Width)

	_, err = Optimize(data, 1920, 80)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestPlaceholder_ClampsSize(t *testing.T) {
	data, err := Placeholder(1, 1, 28800, 14400)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, MaxPlaceholderSide, cfg.Width)
	assert.Equal(t, MaxPlaceholderSide/2, cfg.Height)

	data, err = Placeholder(1, 1, 100, 50000)
	require.NoError(t, err)
	cfg, err = jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, MaxPlaceholderSide, cfg.Height)
}

func TestPlaceholder(t *testing.T) {
	data, err := Placeholder(2, 5, 1190, 1684)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1190, 1684), img.Bounds())

	// somewhere in the heading band there is dark text
	dark := false
	for x := 50; x < 250 && !dark; x++ {
		for y := 30; y < 55; y++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r>>8 < 100 {
				dark = true
				break
			}
		}
	}
	assert.True(t, dark)

	// the far corner stays white
	r, _, _, _ := img.At(1100, 1600).RGBA()
	assert.Greater(t, r>>8, uint32(240))

	_, err = Placeholder(1, 1, 0, 10)
	assert.Error(t, err)
}
