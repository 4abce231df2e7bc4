package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"go.uber.org/zap"
)

// Pagination is the envelope returned by every list endpoint
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

func newPagination(page, limit, totalItems int) Pagination {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// parsePaging reads page/limit query params, clamping to sane bounds.
func parsePaging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return page, limit
}

// parseBoolParam returns nil when the parameter is absent.
func parseBoolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v := raw == "true" || raw == "1"
	return &v
}

// parseFloatParam returns nil when the parameter is absent and an error for
// non-numeric input.
func parseFloatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// respondError maps domain and repository errors onto the API's status
// codes: sentinels to 404, conflicts and guard failures to 400, anything
// unexpected to a 500 whose detail is only exposed outside production.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error, isDevelopment bool) {
	var conflict *repository.ConflictError

	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrSubcategoryNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrReviewNotFound),
		errors.Is(err, repository.ErrFooterPageNotFound),
		errors.Is(err, repository.ErrSocialSettingNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())

	case errors.As(err, &conflict):
		middleware.RespondWithError(w, http.StatusBadRequest, conflict.Message)

	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrHasDependents),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, repository.ErrUserAlreadyExists):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())

	default:
		logger.Error("Request failed", zap.Error(err))
		if isDevelopment {
			middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
