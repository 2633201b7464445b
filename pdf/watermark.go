package pdf

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// BuildWatermark renders a single page of pageWidth x pageHeight points that holds only the
// overlay image, placed and faded according to opts. The image is decoded on every call.
func BuildWatermark(image []byte, pageWidth, pageHeight float64, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	img, err := decodeImage(image)
	if err != nil {
		return nil, err
	}
	applyOpacity(img, opts.OpacityPercent)

	b := img.Bounds()
	placement, err := Place(b.Dx(), b.Dy(), pageWidth, pageHeight, opts.ScalePercent, opts.Position)
	if err != nil {
		return nil, err
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}

	canvas := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	canvas.SetMargins(0, 0, 0)
	canvas.SetAutoPageBreak(false, 0)
	canvas.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	canvas.RegisterImageOptionsReader(watermarkImageName, imgOpts, &encoded)

	// gofpdf measures y from the top edge.
	top := pageHeight - placement.Y - placement.Height
	canvas.ImageOptions(watermarkImageName, placement.X, top, placement.Width, placement.Height, false, imgOpts, 0, "")

	var out bytes.Buffer
	if err := canvas.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to render watermark page: %w", err)
	}
	return out.Bytes(), nil
}
