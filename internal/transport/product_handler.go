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

// ProductRequest represents the create/update product payload
type ProductRequest struct {
	Name             string     `json:"name" validate:"required"`
	Description      string     `json:"description"`
	Price            float64    `json:"price" validate:"required,gt=0"`
	OriginalPrice    *float64   `json:"originalPrice" validate:"omitempty,gte=0"`
	SKU              string     `json:"sku"`
	Images           []string   `json:"images"`
	StockQuantity    int        `json:"stockQuantity" validate:"gte=0"`
	InStock          *bool      `json:"inStock"`
	IsNew            bool       `json:"isNew"`
	IsSale           bool       `json:"isSale"`
	IsFeatured       bool       `json:"isFeatured"`
	IsActive         *bool      `json:"isActive"`
	CategoryID       *uuid.UUID `json:"categoryId"`
	SubcategoryID    *uuid.UUID `json:"subcategoryId"`
	Materials        string     `json:"materials"`
	Dimensions       string     `json:"dimensions"`
	CareInstructions string     `json:"careInstructions"`
	SeoTitle         string     `json:"seoTitle"`
	SeoDescription   string     `json:"seoDescription"`
}

func (req *ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		SKU:              req.SKU,
		Images:           req.Images,
		StockQuantity:    req.StockQuantity,
		InStock:          req.InStock,
		IsNew:            req.IsNew,
		IsSale:           req.IsSale,
		IsFeatured:       req.IsFeatured,
		IsActive:         req.IsActive,
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		Materials:        req.Materials,
		Dimensions:       req.Dimensions,
		CareInstructions: req.CareInstructions,
		SeoTitle:         req.SeoTitle,
		SeoDescription:   req.SeoDescription,
	}
}

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	catalogService service.CatalogService
	productRepo    repository.ProductRepository
	logger         *zap.Logger
	isDevelopment  bool
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(
	catalogService service.CatalogService,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
	isDevelopment bool,
) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		productRepo:    productRepo,
		logger:         logger,
		isDevelopment:  isDevelopment,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{idOrSlug}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})

	r.With(adminMiddleware).Get("/api/admin/products", h.AdminList)
}

func (h *ProductHandler) productFilter(r *http.Request) (repository.ProductFilter, error) {
	q := r.URL.Query()
	page, limit := parsePaging(r)

	minPrice, err := parseFloatParam(r, "minPrice")
	if err != nil {
		return repository.ProductFilter{}, err
	}
	maxPrice, err := parseFloatParam(r, "maxPrice")
	if err != nil {
		return repository.ProductFilter{}, err
	}

	return repository.ProductFilter{
		CategorySlug:    q.Get("category"),
		SubcategorySlug: q.Get("subcategory"),
		Search:          q.Get("search"),
		Featured:        parseBoolParam(r, "featured"),
		Sale:            parseBoolParam(r, "sale"),
		New:             parseBoolParam(r, "new"),
		MinPrice:        minPrice,
		MaxPrice:        maxPrice,
		Sort:            q.Get("sort"),
		Page:            page,
		Limit:           limit,
	}, nil
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, includeInactive bool) {
	filter, err := h.productFilter(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "minPrice and maxPrice must be numeric")
		return
	}
	filter.IncludeInactive = includeInactive

	products, total, err := h.productRepo.List(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"products":   products,
		"pagination": newPagination(filter.Page, filter.Limit, total),
	})
}

// List returns the public, active-only product page
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// AdminList returns all products, inactive included
func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// Get resolves the path segment as a uuid first, then as a slug.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	if id, err := uuid.Parse(idOrSlug); err == nil {
		product, err := h.productRepo.FindByID(r.Context(), id)
		if err != nil {
			respondError(w, h.logger, err, h.isDevelopment)
			return
		}
		middleware.RespondWithJSON(w, http.StatusOK, product)
		return
	}

	product, err := h.productRepo.FindBySlug(r.Context(), idOrSlug)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles admin product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles admin product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, req.toInput())
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles admin product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
