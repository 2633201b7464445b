package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

func init() {
	// pdfcpu would otherwise create a config directory under the user's home.
	api.DisableConfigDir()
}

// Overlayer stamps an overlay image onto the pages of PDF documents.
type Overlayer struct {
	tempDir string
	logger  *zap.Logger
}

// NewOverlayer returns an Overlayer that keeps its intermediate watermark pages under tempDir.
func NewOverlayer(tempDir string, logger *zap.Logger) *Overlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Overlayer{tempDir: tempDir, logger: logger}
}

// Apply stamps image onto the pages of document selected by opts.Scope and returns the
// resulting PDF. Pages outside the scope are copied unchanged and page order is kept.
func (o *Overlayer) Apply(image, document []byte, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(document), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidPDF)
	}

	runDir := filepath.Join(o.tempDir, "overlay_"+uuid.NewString())
	if err := os.MkdirAll(runDir, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(runDir)

	pages := SelectPages(opts.Scope, ctx.PageCount)

	watermarks := make(map[int]*model.Watermark, len(pages))
	for _, pageNr := range pages {
		wm, err := o.pageWatermark(ctx, runDir, image, pageNr, opts)
		if err != nil {
			return nil, &PageError{Page: pageNr - 1, Err: err}
		}
		watermarks[pageNr] = wm
	}

	var out bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(document), &out, watermarks, newConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to merge overlay: %w", err)
	}

	o.logger.Debug("overlay applied",
		zap.Int("pages", ctx.PageCount),
		zap.Int("stamped", len(pages)),
		zap.Stringer("scope", opts.Scope))

	return out.Bytes(), nil
}

// pageWatermark builds the overlay page for pageNr and registers it as a pdfcpu watermark.
func (o *Overlayer) pageWatermark(ctx *model.Context, dir string, image []byte, pageNr int, opts Options) (*model.Watermark, error) {
	w, h, err := pageDimensions(ctx, pageNr)
	if err != nil {
		return nil, err
	}

	page, err := BuildWatermark(image, w, h, opts)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, fmt.Sprintf("page_%d.pdf", pageNr))
	if err := os.WriteFile(path, page, DefaultFilePermissions); err != nil {
		return nil, fmt.Errorf("failed to write watermark page: %w", err)
	}

	wm, err := api.PDFWatermark(path, mergeDescription, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to load watermark page: %w", err)
	}
	return wm, nil
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
