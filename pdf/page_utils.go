package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// SelectPages returns the 1-based page numbers of a document with totalPages pages that
// the scope covers, in ascending order.
func SelectPages(scope Scope, totalPages int) []int {
	var pages []int
	for i := 0; i < totalPages; i++ {
		if scope.Applies(i, totalPages) {
			pages = append(pages, i+1)
		}
	}
	return pages
}

// pageDimensions returns the MediaBox width and height of the 1-based page pageNr.
func pageDimensions(ctx *model.Context, pageNr int) (float64, float64, error) {
	_, _, inh, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, 0, err
	}
	if inh == nil || inh.MediaBox == nil {
		return 0, 0, fmt.Errorf("%w: missing MediaBox", ErrInvalidPDF)
	}
	return inh.MediaBox.Width(), inh.MediaBox.Height(), nil
}
