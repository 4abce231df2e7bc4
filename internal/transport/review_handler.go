package transport

import (
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReviewRequest represents the public review submission payload
type CreateReviewRequest struct {
	ProductID     uuid.UUID `json:"productId" validate:"required"`
	Rating        int       `json:"rating" validate:"required,min=1,max=5"`
	Title         string    `json:"title"`
	Comment       string    `json:"comment" validate:"required"`
	CustomerName  string    `json:"customerName" validate:"required"`
	CustomerEmail string    `json:"customerEmail" validate:"required,email"`
}

// UpdateReviewRequest represents the admin moderation payload
type UpdateReviewRequest struct {
	Rating     int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Title      string `json:"title"`
	Comment    string `json:"comment"`
	IsApproved *bool  `json:"isApproved"`
}

// ReviewHandler handles HTTP requests for product reviews
type ReviewHandler struct {
	reviewRepo    repository.ReviewRepository
	productRepo   repository.ProductRepository
	logger        *zap.Logger
	isDevelopment bool
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
	isDevelopment bool,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepo:    reviewRepo,
		productRepo:   productRepo,
		logger:        logger,
		isDevelopment: isDevelopment,
	}
}

// RegisterRoutes registers all review routes
func (h *ReviewHandler) RegisterRoutes(r chi.Router, optionalAuthMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.With(optionalAuthMiddleware).Post("/api/reviews", h.Create)
	r.Get("/api/products/{id}/reviews", h.ListByProduct)

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/api/reviews", h.List)
		r.Put("/api/reviews/{id}", h.Update)
		r.Delete("/api/reviews/{id}", h.Delete)
	})
}

// Create accepts a public review submission; it starts unapproved. When the
// caller is logged in the review keeps the user reference, but auth is not
// required.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.productRepo.FindByID(r.Context(), req.ProductID); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	var userID *uuid.UUID
	if raw, ok := middleware.GetUserID(r.Context()); ok {
		if id, err := uuid.Parse(raw); err == nil {
			userID = &id
		}
	}

	now := time.Now()
	review := &domain.Review{
		ID:            uuid.New(),
		ProductID:     req.ProductID,
		UserID:        userID,
		Rating:        req.Rating,
		Title:         req.Title,
		Comment:       req.Comment,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		IsApproved:    false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.reviewRepo.Create(r.Context(), review); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("product_id", review.ProductID.String()),
		zap.Int("rating", review.Rating))
	middleware.RespondWithJSON(w, http.StatusCreated, review)
}

// ListByProduct returns approved reviews for one product, newest first
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	reviews, err := h.reviewRepo.ListApprovedByProduct(r.Context(), productID)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

// List returns the paginated admin review queue
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	filter := repository.ReviewFilter{
		Approved: parseBoolParam(r, "approved"),
		Page:     page,
		Limit:    limit,
	}

	reviews, total, err := h.reviewRepo.List(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"reviews":    reviews,
		"pagination": newPagination(page, limit, total),
	})
}

// Update lets an admin approve or edit a review. Zero-value fields keep the
// stored values.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req UpdateReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewRepo.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	if req.Rating != 0 {
		review.Rating = req.Rating
	}
	if req.Title != "" {
		review.Title = req.Title
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}
	if req.IsApproved != nil {
		review.IsApproved = *req.IsApproved
	}
	review.UpdatedAt = time.Now()

	if err := h.reviewRepo.Update(r.Context(), review); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, review)
}

// Delete removes a review
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.reviewRepo.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Review deleted", zap.String("review_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
