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

// CategoryRequest represents the create/update category payload
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsActive    *bool  `json:"isActive"`
}

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	catalogService service.CatalogService
	categoryRepo   repository.CategoryRepository
	logger         *zap.Logger
	isDevelopment  bool
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(
	catalogService service.CatalogService,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
	isDevelopment bool,
) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
		categoryRepo:   categoryRepo,
		logger:         logger,
		isDevelopment:  isDevelopment,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
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

// List returns active categories; includeInactive=true widens the read but
// only matters on the admin dashboard, which sends it.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	categories, err := h.categoryRepo.List(r.Context(), includeInactive)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// GetBySlug resolves a category by its slug, case-insensitively
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryRepo.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Create handles admin category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// Update handles admin category updates
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.UpdateCategory(r.Context(), id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Delete refuses while products or subcategories still reference the category
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Category deleted", zap.String("category_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
