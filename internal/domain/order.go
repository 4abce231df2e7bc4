package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Order statuses
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusRefunded   = "REFUNDED"
)

// Payment statuses
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order represents a customer order. Addresses are opaque JSON blobs
// supplied by the checkout client.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderNumber     string          `json:"orderNumber" db:"order_number"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	CustomerEmail   string          `json:"customerEmail" db:"customer_email"`
	CustomerPhone   string          `json:"customerPhone" db:"customer_phone"`
	Status          string          `json:"status" db:"status"`
	PaymentStatus   string          `json:"paymentStatus" db:"payment_status"`
	ShippingAddress json.RawMessage `json:"shippingAddress" db:"shipping_address"`
	BillingAddress  json.RawMessage `json:"billingAddress" db:"billing_address"`
	Subtotal        float64         `json:"subtotal" db:"subtotal"`
	ShippingCost    float64         `json:"shippingCost" db:"shipping_cost"`
	Total           float64         `json:"total" db:"total"`
	Notes           string          `json:"notes" db:"notes"`
	Items           []*OrderItem    `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem snapshots the product name and price at purchase time.
type OrderItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OrderID      uuid.UUID `json:"orderId" db:"order_id"`
	ProductID    uuid.UUID `json:"productId" db:"product_id"`
	ProductName  string    `json:"productName" db:"product_name"`
	ProductPrice float64   `json:"productPrice" db:"product_price"`
	Quantity     int       `json:"quantity" db:"quantity"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
