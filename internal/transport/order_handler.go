package transport

import (
	"encoding/json"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderItemRequest is one checkout line
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest represents the checkout payload
type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName" validate:"required"`
	CustomerEmail   string             `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string             `json:"customerPhone"`
	ShippingAddress json.RawMessage    `json:"shippingAddress"`
	BillingAddress  json.RawMessage    `json:"billingAddress"`
	ShippingCost    float64            `json:"shippingCost" validate:"gte=0"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents the admin status transition payload
type UpdateOrderStatusRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orderService  service.OrderService
	logger        *zap.Logger
	isDevelopment bool
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger, isDevelopment bool) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		logger:        logger,
		isDevelopment: isDevelopment,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.UpdateStatus)
		})
	})
}

// Create handles public checkout
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order, err := h.orderService.CreateOrder(r.Context(), service.OrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		ShippingCost:    req.ShippingCost,
		Notes:           req.Notes,
		Items:           items,
	})
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total))
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// List returns a paginated admin order listing
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	filter := repository.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}

	orders, total, err := h.orderService.ListOrders(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"orders":     orders,
		"pagination": newPagination(page, limit, total),
	})
}

// Get returns one order with its items
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus applies admin status transitions
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status, req.PaymentStatus)
	if err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("Order status updated",
		zap.String("order_id", id.String()),
		zap.String("status", order.Status),
		zap.String("payment_status", order.PaymentStatus))
	middleware.RespondWithJSON(w, http.StatusOK, order)
}
