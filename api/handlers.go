package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"pdf_overlay/batch"
	"pdf_overlay/pdf"
)

// Handler serves the upload form and the overlay endpoint.
type Handler struct {
	config  *Config
	applier batch.Applier
	logger  *zap.Logger
}

func NewHandler(config *Config, applier batch.Applier, logger *zap.Logger) *Handler {
	return &Handler{
		config:  config,
		applier: applier,
		logger:  logger,
	}
}

type scopeOption struct {
	Value string
	Label string
}

var scopeLabels = map[pdf.Scope]string{
	pdf.ScopeAll:   "All pages",
	pdf.ScopeFirst: "First page",
	pdf.ScopeLast:  "Last page",
}

func (h *Handler) HandleIndex(c *gin.Context) {
	d := h.config.Defaults
	scopes := make([]scopeOption, 0, len(pdf.Scopes()))
	for _, sc := range pdf.Scopes() {
		scopes = append(scopes, scopeOption{Value: sc.String(), Label: scopeLabels[sc]})
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":     "PNG overlay for PDFs",
		"scale":     d.Options.ScalePercent,
		"opacity":   d.Options.OpacityPercent,
		"position":  d.Options.Position.String(),
		"scope":     d.Options.Scope.String(),
		"batchSize": d.BatchSize,
		"suffix":    d.OutputSuffix,
		"positions": pdf.Positions(),
		"scopes":    scopes,
		"maxBatch":  batch.MaxBatchSize,
	})
}

func (h *Handler) HandleOverlay(c *gin.Context) {
	runID := uuid.NewString()
	logger := h.logger.With(zap.String("run_id", runID))

	var form overlayForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := form.settings(h.config.Defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PNG image uploaded"})
		return
	}
	if err := validateUpload(imageHeader, h.config.MaxFileSize, MIMEPNG); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "file": imageHeader.Filename})
		return
	}
	image, err := readUpload(imageHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	if err := pdf.ValidateImage(image); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": truncate(err.Error(), MaxErrorLength), "file": imageHeader.Filename})
		return
	}

	multipartForm, err := c.MultipartForm()
	if err != nil || len(multipartForm.File["pdfs"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF files uploaded"})
		return
	}
	headers := multipartForm.File["pdfs"]
	if len(headers) > h.config.MaxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many PDF files: %d exceeds maximum %d", len(headers), h.config.MaxUploadFiles)})
		return
	}

	inputs := make([]batch.Input, 0, len(headers))
	for _, header := range headers {
		if err := validateUpload(header, h.config.MaxFileSize, MIMEPDF); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "file": header.Filename})
			return
		}
		inputs = append(inputs, batch.Input{
			Name: sanitizeFilename(header.Filename),
			Load: func() ([]byte, error) { return readUpload(header) },
		})
	}

	logger.Info("overlay run started",
		zap.Int("documents", len(inputs)),
		zap.Int("scale", settings.Options.ScalePercent),
		zap.Int("opacity", settings.Options.OpacityPercent),
		zap.Stringer("position", settings.Options.Position),
		zap.Stringer("scope", settings.Options.Scope),
		zap.Int("batch_size", settings.BatchSize))

	results, err := batch.Run(image, inputs, settings, h.applier, func(p batch.Progress) {
		logger.Info("batch processed",
			zap.Int("batch", p.Batch),
			zap.Int("batches", p.Batches),
			zap.Int("done", p.Done),
			zap.Int("total", p.Total))
	})
	if err != nil {
		logger.Error("overlay run failed", zap.Error(err))
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}

	logger.Info("overlay run completed", zap.Int("documents", len(results)))

	if len(results) == 1 {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sanitizeFilename(results[0].Name)))
		c.Data(http.StatusOK, MIMEPDF, results[0].PDF)
		return
	}

	var archive bytes.Buffer
	if err := writeZip(&archive, results); err != nil {
		logger.Error("failed to package results", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to package results"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ZipFilename))
	c.Data(http.StatusOK, MIMEZip, archive.Bytes())
}

// errorResponse maps a run failure to a status code and a body naming the file and page.
func errorResponse(err error) (int, gin.H) {
	body := gin.H{"error": truncate(err.Error(), MaxErrorLength)}

	var fileErr *batch.FileError
	if errors.As(err, &fileErr) {
		body["file"] = fileErr.Name
	}
	var pageErr *pdf.PageError
	if errors.As(err, &pageErr) {
		body["page"] = pageErr.Page + 1
	}

	switch {
	case errors.Is(err, pdf.ErrInvalidOption):
		return http.StatusBadRequest, body
	case errors.Is(err, pdf.ErrInvalidImage), errors.Is(err, pdf.ErrInvalidPDF):
		return http.StatusUnprocessableEntity, body
	default:
		return http.StatusInternalServerError, body
	}
}

// truncate shortens s to at most n characters without splitting a multi-byte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return s
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = norm.NFC.String(filename)

	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	// Get just the base filename to prevent path issues
	filename = filepath.Base(filename)
	filename = strings.TrimSpace(filename)

	// If empty after sanitization, use default
	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

// validateUpload checks the upload size and sniffs its content type
func validateUpload(header *multipart.FileHeader, maxSize int64, expected string) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %v", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to read file header: %v", err)
	}
	if !mtype.Is(expected) {
		return fmt.Errorf("invalid file type %s, expected %s", mtype.String(), expected)
	}
	return nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
