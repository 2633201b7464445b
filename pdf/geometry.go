package pdf

import "fmt"

// Placement is the rectangle the overlay occupies on a page, in points.
// X and Y are the lower-left corner in PDF user space.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Place computes where an image of imgWidth x imgHeight pixels lands on a page.
// The overlay width is scalePercent of the page width and the aspect ratio is kept.
func Place(imgWidth, imgHeight int, pageWidth, pageHeight float64, scalePercent int, pos Position) (Placement, error) {
	if imgWidth <= 0 || imgHeight <= 0 {
		return Placement{}, fmt.Errorf("%w: empty image %dx%d", ErrInvalidImage, imgWidth, imgHeight)
	}
	if pageWidth <= 0 || pageHeight <= 0 {
		return Placement{}, fmt.Errorf("%w: page size %.2fx%.2f", ErrInvalidPDF, pageWidth, pageHeight)
	}
	if scalePercent < MinScalePercent || scalePercent > MaxScalePercent {
		return Placement{}, fmt.Errorf("%w: scale %d%% outside %d-%d", ErrInvalidOption, scalePercent, MinScalePercent, MaxScalePercent)
	}

	w := float64(scalePercent) / 100 * pageWidth
	scale := w / float64(imgWidth)
	h := float64(imgHeight) * scale

	var x, y float64
	switch pos {
	case PositionCenter:
		x, y = (pageWidth-w)/2, (pageHeight-h)/2
	case PositionTopLeft:
		x, y = 0, pageHeight-h
	case PositionTopRight:
		x, y = pageWidth-w, pageHeight-h
	case PositionBottomLeft:
		x, y = 0, 0
	case PositionBottomRight:
		x, y = pageWidth-w, 0
	default:
		return Placement{}, fmt.Errorf("%w: unknown position %v", ErrInvalidOption, pos)
	}

	return Placement{X: x, Y: y, Width: w, Height: h}, nil
}
