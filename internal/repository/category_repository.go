package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, includeInactive bool) ([]*domain.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	CountDependents(ctx context.Context, id uuid.UUID) (int, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

var categoryConstraintMessages = map[string]string{
	"categories_slug_key":            "a category with this slug already exists",
	"products_category_id_fkey":      "cannot delete a category that still has products",
	"subcategories_category_id_fkey": "cannot delete a category that still has subcategories",
}

const categoryColumns = "id, name, slug, description, image_url, is_active, created_at, updated_at"

func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.ImageURL,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Create inserts a new category into the database using parameterized queries
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.ImageURL,
		category.IsActive,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, categoryConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update updates an existing category
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, image_url = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.ImageURL,
		category.IsActive,
		category.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, categoryConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category. Callers check CountDependents first; the
// foreign-key constraints are the backstop.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if ce := constraintError(err, categoryConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// List retrieves categories ordered by name
func (r *categoryRepository) List(ctx context.Context, includeInactive bool) ([]*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories`, categoryColumns)
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a category by ID
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

// FindBySlug retrieves a category by slug, case-insensitively
func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE LOWER(slug) = LOWER($1)`, categoryColumns)

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by slug: %w", err)
	}

	return category, nil
}

// SlugExists reports whether another category already uses the slug
func (r *categoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int
	var err error
	if excludeID != nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM categories WHERE LOWER(slug) = LOWER($1) AND id != $2`,
			slug, *excludeID,
		).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM categories WHERE LOWER(slug) = LOWER($1)`,
			slug,
		).Scan(&count)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return count > 0, nil
}

// CountDependents counts products and subcategories still referencing the category
func (r *categoryRepository) CountDependents(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(1) FROM products WHERE category_id = $1)
		     + (SELECT COUNT(1) FROM subcategories WHERE category_id = $1)
	`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count category dependents: %w", err)
	}
	return count, nil
}
