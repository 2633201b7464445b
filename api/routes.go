package api

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"pdf_overlay/batch"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Config holds application configuration
type Config struct {
	Port           string
	MaxFileSize    int64
	MaxUploadFiles int
	TempDir        string
	Defaults       batch.Settings
}

func SetupRoutes(r *gin.Engine, h *Handler) {
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", h.HandleIndex)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/overlay", h.HandleOverlay)
	}
}
