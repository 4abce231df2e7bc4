package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubcategoryRequest represents the create/update subcategory payload
type SubcategoryRequest struct {
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	IsActive    *bool     `json:"isActive"`
}

// SubcategoryHandler handles HTTP requests for subcategories
type SubcategoryHandler struct {
	catalogService  service.CatalogService
	subcategoryRepo repository.SubcategoryRepository
	logger          *zap.Logger
	isDevelopment   bool
}

// NewSubcategoryHandler creates a new SubcategoryHandler
func NewSubcategoryHandler(
	catalogService service.CatalogService,
	subcategoryRepo repository.SubcategoryRepository,
	logger *zap.Logger,
	isDevelopment bool,
) *SubcategoryHandler {
	return &SubcategoryHandler{
		catalogService:  catalogService,
		subcategoryRepo: subcategoryRepo,
		logger:          logger,
		isDevelopment:   isDevelopment,
	}
}

// RegisterRoutes registers all subcategory routes
func (h *SubcategoryHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/subcategories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{slug}", h.GetBySlug)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns subcategories, optionally scoped to one category
func (h *SubcategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "categoryId must be a uuid")
			return
		}
		categoryID = &id
	}

	subcategories, err := h.subcategoryRepo.List(r.Context(), categoryID, includeInactive)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"subcategories": subcategories})
}

// GetBySlug resolves a subcategory by its slug, case-insensitively
func (h *SubcategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	subcategory, err := h.subcategoryRepo.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subcategory)
}

// Create handles admin subcategory creation
func (h *SubcategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SubcategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subcategory, err := h.catalogService.CreateSubcategory(r.Context(), service.SubcategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Subcategory created",
		zap.String("subcategory_id", subcategory.ID.String()),
		zap.String("slug", subcategory.Slug))
	middleware.RespondWithJSON(w, http.StatusCreated, subcategory)
}

// Update handles admin subcategory updates
func (h *SubcategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	var req SubcategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subcategory, err := h.catalogService.UpdateSubcategory(r.Context(), id, service.SubcategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subcategory)
}

// Delete refuses while products still reference the subcategory
func (h *SubcategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	if err := h.catalogService.DeleteSubcategory(r.Context(), id); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Subcategory deleted", zap.String("subcategory_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "subcategory deleted"})
}
