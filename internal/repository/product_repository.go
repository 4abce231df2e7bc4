package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

// Product sort orders accepted by the list endpoint
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
)

// ProductFilter describes one filtered, sorted, paginated product read.
// Slug filters are matched case-insensitively; a slug that matches nothing
// yields an empty result set rather than an error.
type ProductFilter struct {
	CategorySlug    string
	SubcategorySlug string
	Search          string
	Featured        *bool
	Sale            *bool
	New             *bool
	MinPrice        *float64
	MaxPrice        *float64
	IncludeInactive bool
	Sort            string
	Page            int
	Limit           int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

var productConstraintMessages = map[string]string{
	"products_slug_key":            "a product with this slug already exists",
	"products_category_id_fkey":    "the referenced category does not exist",
	"products_subcategory_id_fkey": "the referenced subcategory does not exist",
	"order_items_product_id_fkey":  "cannot delete a product that appears in orders",
}

const productColumns = `id, name, slug, description, price, original_price, sku, images,
		stock_quantity, in_stock, is_new, is_sale, is_featured, is_active,
		category_id, subcategory_id, materials, dimensions, care_instructions,
		seo_title, seo_description, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	product := &domain.Product{}
	var images []byte
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.OriginalPrice,
		&product.SKU,
		&images,
		&product.StockQuantity,
		&product.InStock,
		&product.IsNew,
		&product.IsSale,
		&product.IsFeatured,
		&product.IsActive,
		&product.CategoryID,
		&product.SubcategoryID,
		&product.Materials,
		&product.Dimensions,
		&product.CareInstructions,
		&product.SeoTitle,
		&product.SeoDescription,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &product.Images); err != nil {
			return nil, fmt.Errorf("failed to decode product images: %w", err)
		}
	}

	return product, nil
}

func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	images, err := encodeImages(product.Images)
	if err != nil {
		return fmt.Errorf("failed to encode product images: %w", err)
	}

	query := `
		INSERT INTO products (id, name, slug, description, price, original_price, sku, images,
			stock_quantity, in_stock, is_new, is_sale, is_featured, is_active,
			category_id, subcategory_id, materials, dimensions, care_instructions,
			seo_title, seo_description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.SKU,
		images,
		product.StockQuantity,
		product.InStock,
		product.IsNew,
		product.IsSale,
		product.IsFeatured,
		product.IsActive,
		product.CategoryID,
		product.SubcategoryID,
		product.Materials,
		product.Dimensions,
		product.CareInstructions,
		product.SeoTitle,
		product.SeoDescription,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, productConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	images, err := encodeImages(product.Images)
	if err != nil {
		return fmt.Errorf("failed to encode product images: %w", err)
	}

	query := `
		UPDATE products
		SET name = $2, slug = $3, description = $4, price = $5, original_price = $6,
		    sku = $7, images = $8, stock_quantity = $9, in_stock = $10, is_new = $11,
		    is_sale = $12, is_featured = $13, is_active = $14, category_id = $15,
		    subcategory_id = $16, materials = $17, dimensions = $18,
		    care_instructions = $19, seo_title = $20, seo_description = $21, updated_at = $22
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.SKU,
		images,
		product.StockQuantity,
		product.InStock,
		product.IsNew,
		product.IsSale,
		product.IsFeatured,
		product.IsActive,
		product.CategoryID,
		product.SubcategoryID,
		product.Materials,
		product.Dimensions,
		product.CareInstructions,
		product.SeoTitle,
		product.SeoDescription,
		product.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, productConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if ce := constraintError(err, productConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindBySlug retrieves a product by slug, case-insensitively
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE LOWER(slug) = LOWER($1)`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by slug: %w", err)
	}

	return product, nil
}

// SlugExists reports whether another product already uses the slug
func (r *productRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int
	var err error
	if excludeID != nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM products WHERE LOWER(slug) = LOWER($1) AND id != $2`,
			slug, *excludeID,
		).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM products WHERE LOWER(slug) = LOWER($1)`,
			slug,
		).Scan(&count)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product slug: %w", err)
	}
	return count > 0, nil
}

// List performs a single filtered, sorted, paginated read and returns the
// page of products plus the total match count.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error) {
	where := []string{}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeInactive {
		where = append(where, "is_active = TRUE")
	}
	if filter.CategorySlug != "" {
		where = append(where, fmt.Sprintf(
			"category_id IN (SELECT id FROM categories WHERE LOWER(slug) = LOWER(%s))",
			arg(filter.CategorySlug)))
	}
	if filter.SubcategorySlug != "" {
		where = append(where, fmt.Sprintf(
			"subcategory_id IN (SELECT id FROM subcategories WHERE LOWER(slug) = LOWER(%s))",
			arg(filter.SubcategorySlug)))
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE %s", arg("%"+filter.Search+"%")))
	}
	if filter.Featured != nil {
		where = append(where, fmt.Sprintf("is_featured = %s", arg(*filter.Featured)))
	}
	if filter.Sale != nil {
		where = append(where, fmt.Sprintf("is_sale = %s", arg(*filter.Sale)))
	}
	if filter.New != nil {
		where = append(where, fmt.Sprintf("is_new = %s", arg(*filter.New)))
	}
	if filter.MinPrice != nil {
		where = append(where, fmt.Sprintf("price >= %s", arg(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		where = append(where, fmt.Sprintf("price <= %s", arg(*filter.MaxPrice)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// The sort expression is chosen from a fixed set, never from user input.
	var orderBy string
	switch filter.Sort {
	case SortPriceAsc:
		orderBy = "price ASC, created_at DESC"
	case SortPriceDesc:
		orderBy = "price DESC, created_at DESC"
	case SortNameAsc:
		orderBy = "name ASC"
	default:
		orderBy = "created_at DESC"
	}

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY %s
		LIMIT %s OFFSET %s
	`, productColumns, whereClause, orderBy, arg(filter.Limit), arg(offset))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}
