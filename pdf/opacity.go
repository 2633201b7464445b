package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// decodeImage decodes PNG bytes into a non-premultiplied RGBA buffer the caller may modify.
func decodeImage(data []byte) (*image.NRGBA, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst, nil
}

// ValidateImage reports whether data decodes as a PNG image.
func ValidateImage(data []byte) error {
	_, err := decodeImage(data)
	return err
}

// applyOpacity scales every pixel's alpha by percent/100, rounding to the nearest integer.
// Colour channels are left as they are. At 100% or more the image is not touched.
func applyOpacity(img *image.NRGBA, percent int) {
	if percent >= MaxOpacityPercent {
		return
	}
	factor := float64(max(percent, 0)) / 100

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			row[i] = scaleAlpha(row[i], factor)
		}
	}
}

func scaleAlpha(a uint8, factor float64) uint8 {
	v := math.Round(float64(a) * factor)
	if v < 0 {
		return 0
	}
	if v > maxAlpha {
		return maxAlpha
	}
	return uint8(v)
}
