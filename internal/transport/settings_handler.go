package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/settings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsHandler handles HTTP requests for the file-backed site settings
type SettingsHandler struct {
	store         *settings.Store
	notifier      *settings.Notifier
	logger        *zap.Logger
	isDevelopment bool
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(
	store *settings.Store,
	notifier *settings.Notifier,
	logger *zap.Logger,
	isDevelopment bool,
) *SettingsHandler {
	return &SettingsHandler{
		store:         store,
		notifier:      notifier,
		logger:        logger,
		isDevelopment: isDevelopment,
	}
}

// RegisterRoutes registers all settings routes
func (h *SettingsHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/events", h.Events)
		r.With(adminMiddleware).Put("/", h.Put)
	})
}

// Get returns the current settings object
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	current, err := h.store.Get()
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, current)
}

// Put replaces the settings file and wakes SSE subscribers so storefront
// clients re-fetch.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var incoming map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "settings must be a JSON object")
		return
	}

	if err := h.store.Put(incoming); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.notifier.Notify()
	h.logger.Info("Settings updated", zap.Int("keys", len(incoming)))
	middleware.RespondWithJSON(w, http.StatusOK, incoming)
}

// Events streams a server-sent `refresh` event on every settings write.
func (h *SettingsHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Long-lived stream: lift the server's per-connection write deadline.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticks, cancel := h.notifier.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticks:
			fmt.Fprint(w, "event: refresh\ndata: {}\n\n")
			flusher.Flush()
		}
	}
}
