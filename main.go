package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"pdf_overlay/api"
	"pdf_overlay/batch"
	"pdf_overlay/pdf"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultMaxFileSize is the default maximum size of one upload (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultMaxUploadFiles is the default maximum number of PDFs per request
	DefaultMaxUploadFiles = 300

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory
	DefaultTempDir = "./temp"

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 60 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout; a full batch is processed
	// before the response is written
	ServerWriteTimeout = 10 * time.Minute

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	logger, err := newLogger(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	defaults, err := loadDefaults()
	if err != nil {
		logger.Fatal("Invalid overlay defaults", zap.Error(err))
	}

	config := &api.Config{
		Port:           getEnv("PORT", DefaultPort),
		MaxFileSize:    getEnvInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		MaxUploadFiles: getEnvInt("MAX_UPLOAD_FILES", DefaultMaxUploadFiles),
		TempDir:        getEnv("TEMP_DIR", DefaultTempDir),
		Defaults:       defaults,
	}

	if err := os.MkdirAll(config.TempDir, api.DefaultFilePermissions); err != nil {
		logger.Fatal("Failed to create temp directory", zap.String("dir", config.TempDir), zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(logger.Named("http")))
	r.MaxMultipartMemory = config.MaxFileSize

	overlayer := pdf.NewOverlayer(config.TempDir, logger.Named("overlay"))
	handler := api.NewHandler(config, overlayer, logger.Named("api"))
	api.SetupRoutes(r, handler)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_overlay",
		})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.Int64("max_file_size", config.MaxFileSize),
			zap.Int("max_upload_files", config.MaxUploadFiles),
			zap.String("temp_dir", config.TempDir))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// loadDefaults reads the overlay defaults shown in the form and used for omitted fields.
func loadDefaults() (batch.Settings, error) {
	s := batch.DefaultSettings()
	s.Options.ScalePercent = getEnvInt("DEFAULT_SCALE", s.Options.ScalePercent)
	s.Options.OpacityPercent = getEnvInt("DEFAULT_OPACITY", s.Options.OpacityPercent)
	s.BatchSize = getEnvInt("DEFAULT_BATCH_SIZE", s.BatchSize)
	s.OutputSuffix = getEnv("OUTPUT_SUFFIX", s.OutputSuffix)

	if v := os.Getenv("DEFAULT_POSITION"); v != "" {
		pos, err := pdf.ParsePosition(v)
		if err != nil {
			return s, err
		}
		s.Options.Position = pos
	}
	if v := os.Getenv("DEFAULT_SCOPE"); v != "" {
		scope, err := pdf.ParseScope(v)
		if err != nil {
			return s, err
		}
		s.Options.Scope = scope
	}
	return s, s.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
