package integrations

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 248, G: 208, B: 48, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestArtworkScalerDownscales(t *testing.T) {
	scaler := NewArtworkScaler(320, 320)

	out, err := scaler.ScaleData(encodeTestPNG(t, 640, 480))
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestArtworkScalerKeepsSmallImages(t *testing.T) {
	scaler := NewArtworkScaler(320, 320)

	out, err := scaler.ScaleData(encodeTestPNG(t, 96, 96))
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 96, w)
	assert.Equal(t, 96, h)
}

func TestArtworkScalerRejectsGarbage(t *testing.T) {
	scaler := NewArtworkScaler(320, 320)

	_, err := scaler.ScaleData([]byte("not an image"))
	assert.Error(t, err)
}

func TestCalculateDimensions(t *testing.T) {
	scaler := NewArtworkScaler(100, 200)

	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{50, 50, 50, 50},
		{200, 200, 100, 100},
		{100, 400, 50, 200},
		{1000, 1, 100, 1},
	}
	for _, tt := range tests {
		w, h := scaler.calculateDimensions(tt.w, tt.h)
		assert.Equal(t, tt.wantW, w, "width for %dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "height for %dx%d", tt.w, tt.h)
	}
}
