package transport

import (
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FooterPageRequest represents the create/update footer page payload
type FooterPageRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

// SocialMediaRequest represents the upsert payload for one platform link
type SocialMediaRequest struct {
	Platform  string `json:"platform" validate:"required"`
	URL       string `json:"url" validate:"required,url"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

// CMSHandler handles HTTP requests for footer pages and social media links
type CMSHandler struct {
	footerPageRepo  repository.FooterPageRepository
	socialMediaRepo repository.SocialMediaRepository
	logger          *zap.Logger
	isDevelopment   bool
}

// NewCMSHandler creates a new CMSHandler
func NewCMSHandler(
	footerPageRepo repository.FooterPageRepository,
	socialMediaRepo repository.SocialMediaRepository,
	logger *zap.Logger,
	isDevelopment bool,
) *CMSHandler {
	return &CMSHandler{
		footerPageRepo:  footerPageRepo,
		socialMediaRepo: socialMediaRepo,
		logger:          logger,
		isDevelopment:   isDevelopment,
	}
}

// RegisterRoutes registers all CMS routes
func (h *CMSHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/footer-pages", func(r chi.Router) {
		r.Get("/", h.ListFooterPages)
		r.Get("/{slug}", h.GetFooterPage)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.CreateFooterPage)
			r.Put("/{id}", h.UpdateFooterPage)
			r.Delete("/{id}", h.DeleteFooterPage)
		})
	})

	r.Route("/api/social-media", func(r chi.Router) {
		r.Get("/", h.ListSocialMedia)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.UpsertSocialMedia)
			r.Delete("/{id}", h.DeleteSocialMedia)
		})
	})
}

// ListFooterPages returns footer pages ordered by sort_order
func (h *CMSHandler) ListFooterPages(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	pages, err := h.footerPageRepo.List(r.Context(), includeInactive)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

// GetFooterPage resolves a footer page by its slug
func (h *CMSHandler) GetFooterPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.footerPageRepo.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// CreateFooterPage creates a footer page; the slug is derived from the title
func (h *CMSHandler) CreateFooterPage(w http.ResponseWriter, r *http.Request) {
	var req FooterPageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now()
	page := &domain.FooterPage{
		ID:        uuid.New(),
		Title:     req.Title,
		Slug:      service.Slugify(req.Title),
		Content:   req.Content,
		IsActive:  req.IsActive == nil || *req.IsActive,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.footerPageRepo.Create(r.Context(), page); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Footer page created",
		zap.String("page_id", page.ID.String()),
		zap.String("slug", page.Slug))
	middleware.RespondWithJSON(w, http.StatusCreated, page)
}

// UpdateFooterPage updates a footer page, re-deriving the slug from the title
func (h *CMSHandler) UpdateFooterPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid footer page id")
		return
	}

	var req FooterPageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page := &domain.FooterPage{
		ID:        id,
		Title:     req.Title,
		Slug:      service.Slugify(req.Title),
		Content:   req.Content,
		IsActive:  req.IsActive == nil || *req.IsActive,
		SortOrder: req.SortOrder,
		UpdatedAt: time.Now(),
	}

	if err := h.footerPageRepo.Update(r.Context(), page); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// DeleteFooterPage removes a footer page
func (h *CMSHandler) DeleteFooterPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid footer page id")
		return
	}

	if err := h.footerPageRepo.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Footer page deleted", zap.String("page_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "footer page deleted"})
}

// ListSocialMedia returns social links ordered by sort_order
func (h *CMSHandler) ListSocialMedia(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	settings, err := h.socialMediaRepo.List(r.Context(), includeInactive)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"socialMedia": settings})
}

// UpsertSocialMedia creates or replaces the link for one platform
func (h *CMSHandler) UpsertSocialMedia(w http.ResponseWriter, r *http.Request) {
	var req SocialMediaRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now()
	setting := &domain.SocialMediaSetting{
		ID:        uuid.New(),
		Platform:  req.Platform,
		URL:       req.URL,
		IsActive:  req.IsActive == nil || *req.IsActive,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.socialMediaRepo.Upsert(r.Context(), setting); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Social media link saved", zap.String("platform", setting.Platform))
	middleware.RespondWithJSON(w, http.StatusOK, setting)
}

// DeleteSocialMedia removes a social link
func (h *CMSHandler) DeleteSocialMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid social media id")
		return
	}

	if err := h.socialMediaRepo.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Social media link deleted", zap.String("id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "social media link deleted"})
}
