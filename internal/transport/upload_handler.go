package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20 // 10MB

var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// UploadHandler handles admin image uploads
type UploadHandler struct {
	uploader      storage.Uploader
	logger        *zap.Logger
	isDevelopment bool
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader storage.Uploader, logger *zap.Logger, isDevelopment bool) *UploadHandler {
	return &UploadHandler{
		uploader:      uploader,
		logger:        logger,
		isDevelopment: isDevelopment,
	}
}

// RegisterRoutes registers the upload route
func (h *UploadHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.With(adminMiddleware).Post("/api/upload", h.Upload)
}

// Upload accepts a multipart `file` part, sniffs the content type, and
// stores the file under a random key.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "a file part named 'file' is required and must be at most 10MB")
		return
	}
	defer file.Close()

	// Sniff the real content type instead of trusting the client header.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// DetectContentType cannot identify SVG; fall back to the extension.
		if strings.EqualFold(filepath.Ext(header.Filename), ".svg") && strings.HasPrefix(contentType, "text/") {
			contentType, ext = "image/svg+xml", ".svg"
		} else {
			middleware.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type %q", contentType))
			return
		}
	}

	key := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)
	body := io.MultiReader(bytes.NewReader(head), file)

	url, err := h.uploader.Upload(r.Context(), key, body)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("File uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", header.Size))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"url":         url,
		"contentType": contentType,
	})
}
