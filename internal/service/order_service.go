package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidStatus   = errors.New("unknown order or payment status")
)

// OrderItemInput is one checkout line: the product and how many.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderInput carries the checkout payload
type OrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress json.RawMessage
	BillingAddress  json.RawMessage
	ShippingCost    float64
	Notes           string
	Items           []OrderItemInput
}

// OrderService assembles orders: snapshots product name/price, computes
// totals, and generates the order number.
type OrderService interface {
	CreateOrder(ctx context.Context, input OrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, paymentStatus string) (*domain.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CreateOrder validates items, snapshots product data, and writes the order
// with its items atomically.
func (s *orderService) CreateOrder(ctx context.Context, input OrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	orderID := uuid.New()
	now := time.Now()

	var subtotal float64
	items := make([]*domain.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		subtotal += product.Price * float64(line.Quantity)
		items = append(items, &domain.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     line.Quantity,
			CreatedAt:    now,
		})
	}

	order := &domain.Order{
		ID:              orderID,
		OrderNumber:     generateOrderNumber(now),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		ShippingAddress: normalizeAddress(input.ShippingAddress),
		BillingAddress:  normalizeAddress(input.BillingAddress),
		Subtotal:        subtotal,
		ShippingCost:    input.ShippingCost,
		Total:           subtotal + input.ShippingCost,
		Notes:           input.Notes,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder retrieves an order with its items
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// ListOrders retrieves a filtered order page
func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, int, error) {
	return s.orderRepo.List(ctx, filter)
}

// UpdateOrderStatus validates and applies status transitions. Empty values
// keep the current status.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, paymentStatus string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = order.Status
	}
	if paymentStatus == "" {
		paymentStatus = order.PaymentStatus
	}
	if !domain.ValidOrderStatus(status) || !domain.ValidPaymentStatus(paymentStatus) {
		return nil, ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status, paymentStatus); err != nil {
		return nil, err
	}

	order.Status = status
	order.PaymentStatus = paymentStatus
	return order, nil
}

// generateOrderNumber builds a number like ORD-20260901-483920.
func generateOrderNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 1000000)
	}
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), n.Int64())
}

// normalizeAddress stores an explicit JSON null for missing address blobs so
// the jsonb column round-trips cleanly.
func normalizeAddress(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
