package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: alpha})
		}
	}
	return img
}

func testPNG(t *testing.T, w, h int, alpha uint8) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h, alpha)))
	return buf.Bytes()
}

// testPDF returns a document with one page per size, each with a filled square on it.
// The square moves from page to page so no two pages share content.
func testPDF(t *testing.T, sizes ...gofpdf.SizeType) []byte {
	t.Helper()
	doc := gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: sizes[0]})
	doc.SetAutoPageBreak(false, 0)
	for i, size := range sizes {
		doc.AddPageFormat("P", size)
		doc.SetFillColor(30, 30, 30)
		doc.Rect(10+float64(i)*5, 10, 50, 50, "F")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func readContext(t *testing.T, data []byte) *model.Context {
	t.Helper()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConfiguration())
	require.NoError(t, err)
	require.NoError(t, ctx.EnsurePageCount())
	return ctx
}

func pageContent(t *testing.T, ctx *model.Context, pageNr int) []byte {
	t.Helper()
	d, _, _, err := ctx.PageDict(pageNr, false)
	require.NoError(t, err)
	content, err := ctx.PageContent(d, pageNr)
	require.NoError(t, err)
	return content
}

var (
	a4     = gofpdf.SizeType{Wd: 595, Ht: 842}
	letter = gofpdf.SizeType{Wd: 612, Ht: 792}
	wide   = gofpdf.SizeType{Wd: 800, Ht: 600}
)
