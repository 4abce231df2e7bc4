package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderFilter describes a paginated admin order listing
type OrderFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status, paymentStatus string) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

var orderConstraintMessages = map[string]string{
	"orders_order_number_key":     "an order with this order number already exists",
	"order_items_product_id_fkey": "one of the ordered products does not exist",
}

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
		status, payment_status, shipping_address, billing_address,
		subtotal, shipping_cost, total, notes, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.Status,
		&order.PaymentStatus,
		&order.ShippingAddress,
		&order.BillingAddress,
		&order.Subtotal,
		&order.ShippingCost,
		&order.Total,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateWithItems inserts the order and its items in a single transaction so
// an order can never exist without its items.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
			status, payment_status, shipping_address, billing_address,
			subtotal, shipping_cost, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = tx.ExecContext(
		ctx,
		orderQuery,
		order.ID,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.Status,
		order.PaymentStatus,
		order.ShippingAddress,
		order.BillingAddress,
		order.Subtotal,
		order.ShippingCost,
		order.Total,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if ce := constraintError(err, orderConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, item := range items {
		_, err = tx.ExecContext(
			ctx,
			itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.ProductPrice,
			item.Quantity,
			item.CreatedAt,
		)
		if err != nil {
			if ce := constraintError(err, orderConstraintMessages); ce != nil {
				return ce
			}
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// FindByID retrieves an order with its items
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, product_price, quantity, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer itemRows.Close()

	order.Items = []*domain.OrderItem{}
	for itemRows.Next() {
		item := &domain.OrderItem{}
		err := itemRows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return order, nil
}

// List retrieves orders newest first with optional status filtering and a
// search over order number and customer email.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]*domain.Order, int, error) {
	where := []string{}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = %s", arg(filter.Status)))
	}
	if filter.Search != "" {
		pattern := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf("(order_number ILIKE %s OR customer_email ILIKE %s)", pattern, pattern))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT %s OFFSET %s
	`, orderColumns, whereClause, arg(filter.Limit), arg(offset))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus updates the order and payment status fields
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, paymentStatus string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, payment_status = $3, updated_at = NOW()
		WHERE id = $1
	`, id, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
