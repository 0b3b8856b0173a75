package integrations

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ArtworkScaler shrinks artwork to fit a bounding box, keeping the aspect
// ratio, and re-encodes it as PNG. Images already inside the box are only
// re-encoded.
type ArtworkScaler struct {
	MaxWidth  int
	MaxHeight int
}

func NewArtworkScaler(maxWidth, maxHeight int) *ArtworkScaler {
	return &ArtworkScaler{MaxWidth: maxWidth, MaxHeight: maxHeight}
}

func (s *ArtworkScaler) Scale(input io.Reader) ([]byte, error) {
	img, _, err := image.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := s.calculateDimensions(bounds.Dx(), bounds.Dy())
	if width != bounds.Dx() || height != bounds.Dy() {
		img = s.resize(img, width, height)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ArtworkScaler) ScaleData(data []byte) ([]byte, error) {
	return s.Scale(bytes.NewReader(data))
}

func (s *ArtworkScaler) calculateDimensions(width, height int) (int, int) {
	if width <= s.MaxWidth && height <= s.MaxHeight {
		return width, height
	}

	widthScale := float64(s.MaxWidth) / float64(width)
	heightScale := float64(s.MaxHeight) / float64(height)
	scale := widthScale
	if heightScale < widthScale {
		scale = heightScale
	}

	return max(1, int(float64(width)*scale)), max(1, int(float64(height)*scale))
}

func (s *ArtworkScaler) resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
