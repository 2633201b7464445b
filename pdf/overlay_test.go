package pdf

import (
	"os"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestOverlayer(t *testing.T) *Overlayer {
	return NewOverlayer(t.TempDir(), zaptest.NewLogger(t))
}

func TestApplyScopes(t *testing.T) {
	sizes := []gofpdf.SizeType{a4, letter, wide, a4}
	doc := testPDF(t, sizes...)
	img := testPNG(t, 200, 100, 255)

	tests := []struct {
		scope   Scope
		stamped []bool
	}{
		{ScopeAll, []bool{true, true, true, true}},
		{ScopeFirst, []bool{true, false, false, false}},
		{ScopeLast, []bool{false, false, false, true}},
	}

	in := readContext(t, doc)
	for _, tt := range tests {
		t.Run(tt.scope.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Scope = tt.scope

			out, err := newTestOverlayer(t).Apply(img, doc, opts)
			require.NoError(t, err)

			ctx := readContext(t, out)
			require.Equal(t, len(sizes), ctx.PageCount)

			for i, size := range sizes {
				pageNr := i + 1

				w, h, err := pageDimensions(ctx, pageNr)
				require.NoError(t, err)
				assert.InDelta(t, size.Wd, w, 0.01, "page %d width", pageNr)
				assert.InDelta(t, size.Ht, h, 0.01, "page %d height", pageNr)

				before := pageContent(t, in, pageNr)
				after := pageContent(t, ctx, pageNr)
				if tt.stamped[i] {
					assert.NotEqual(t, before, after, "page %d should carry the overlay", pageNr)
				} else {
					assert.Equal(t, before, after, "page %d should be untouched", pageNr)
				}
			}
		})
	}
}

func TestApplySinglePage(t *testing.T) {
	doc := testPDF(t, letter)
	img := testPNG(t, 50, 50, 255)

	for _, scope := range Scopes() {
		opts := DefaultOptions()
		opts.Scope = scope

		out, err := newTestOverlayer(t).Apply(img, doc, opts)
		require.NoError(t, err, scope.String())

		ctx := readContext(t, out)
		assert.Equal(t, 1, ctx.PageCount)
		assert.NotEqual(t, pageContent(t, readContext(t, doc), 1), pageContent(t, ctx, 1))
	}
}

func TestApplyRemovesWorkDirectory(t *testing.T) {
	dir := t.TempDir()
	o := NewOverlayer(dir, nil)

	_, err := o.Apply(testPNG(t, 10, 10, 255), testPDF(t, a4, a4), DefaultOptions())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApplyErrors(t *testing.T) {
	o := newTestOverlayer(t)
	img := testPNG(t, 10, 10, 255)

	_, err := o.Apply(img, []byte("%PDF-1.4 garbage"), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidPDF)

	_, err = o.Apply([]byte("not a png"), testPDF(t, a4, letter), DefaultOptions())
	require.ErrorIs(t, err, ErrInvalidImage)
	var pageErr *PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 0, pageErr.Page)

	opts := DefaultOptions()
	opts.Position = Position(99)
	_, err = o.Apply(img, testPDF(t, a4), opts)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestPageErrorMessage(t *testing.T) {
	err := &PageError{Page: 2, Err: ErrInvalidImage}
	assert.Equal(t, "page 3: invalid overlay image", err.Error())
	assert.ErrorIs(t, err, ErrInvalidImage)
}
