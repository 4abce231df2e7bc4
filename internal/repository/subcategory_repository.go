package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrSubcategoryNotFound = errors.New("subcategory not found")

// SubcategoryRepository defines the interface for subcategory data access
type SubcategoryRepository interface {
	Create(ctx context.Context, subcategory *domain.Subcategory) error
	Update(ctx context.Context, subcategory *domain.Subcategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]*domain.Subcategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Subcategory, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Subcategory, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	CountDependents(ctx context.Context, id uuid.UUID) (int, error)
}

type subcategoryRepository struct {
	db *sql.DB
}

// NewSubcategoryRepository creates a new instance of SubcategoryRepository
func NewSubcategoryRepository(db *sql.DB) SubcategoryRepository {
	return &subcategoryRepository{db: db}
}

var subcategoryConstraintMessages = map[string]string{
	"subcategories_slug_key":         "a subcategory with this slug already exists",
	"subcategories_category_id_fkey": "the referenced category does not exist",
	"products_subcategory_id_fkey":   "cannot delete a subcategory that still has products",
}

const subcategoryColumns = "id, category_id, name, slug, description, image_url, is_active, created_at, updated_at"

func scanSubcategory(row interface{ Scan(...any) error }) (*domain.Subcategory, error) {
	sub := &domain.Subcategory{}
	err := row.Scan(
		&sub.ID,
		&sub.CategoryID,
		&sub.Name,
		&sub.Slug,
		&sub.Description,
		&sub.ImageURL,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Create inserts a new subcategory
func (r *subcategoryRepository) Create(ctx context.Context, subcategory *domain.Subcategory) error {
	query := `
		INSERT INTO subcategories (id, category_id, name, slug, description, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		subcategory.ID,
		subcategory.CategoryID,
		subcategory.Name,
		subcategory.Slug,
		subcategory.Description,
		subcategory.ImageURL,
		subcategory.IsActive,
		subcategory.CreatedAt,
		subcategory.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, subcategoryConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to create subcategory: %w", err)
	}

	return nil
}

// Update updates an existing subcategory
func (r *subcategoryRepository) Update(ctx context.Context, subcategory *domain.Subcategory) error {
	query := `
		UPDATE subcategories
		SET category_id = $2, name = $3, slug = $4, description = $5, image_url = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		subcategory.ID,
		subcategory.CategoryID,
		subcategory.Name,
		subcategory.Slug,
		subcategory.Description,
		subcategory.ImageURL,
		subcategory.IsActive,
		subcategory.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, subcategoryConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to update subcategory: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSubcategoryNotFound
	}

	return nil
}

// Delete removes a subcategory
func (r *subcategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		if ce := constraintError(err, subcategoryConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSubcategoryNotFound
	}

	return nil
}

// List retrieves subcategories, optionally scoped to a category
func (r *subcategoryRepository) List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]*domain.Subcategory, error) {
	query := fmt.Sprintf(`SELECT %s FROM subcategories`, subcategoryColumns)
	args := []any{}
	where := []string{}

	if categoryID != nil {
		where = append(where, "category_id = $1")
		args = append(args, *categoryID)
	}
	if !includeInactive {
		where = append(where, "is_active = TRUE")
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer rows.Close()

	subcategories := []*domain.Subcategory{}
	for rows.Next() {
		sub, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subcategories = append(subcategories, sub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subcategories: %w", err)
	}

	return subcategories, nil
}

// FindByID retrieves a subcategory by ID
func (r *subcategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Subcategory, error) {
	query := fmt.Sprintf(`SELECT %s FROM subcategories WHERE id = $1`, subcategoryColumns)

	sub, err := scanSubcategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("failed to find subcategory by ID: %w", err)
	}

	return sub, nil
}

// FindBySlug retrieves a subcategory by slug, case-insensitively
func (r *subcategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Subcategory, error) {
	query := fmt.Sprintf(`SELECT %s FROM subcategories WHERE LOWER(slug) = LOWER($1)`, subcategoryColumns)

	sub, err := scanSubcategory(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("failed to find subcategory by slug: %w", err)
	}

	return sub, nil
}

// SlugExists reports whether another subcategory already uses the slug
func (r *subcategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int
	var err error
	if excludeID != nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM subcategories WHERE LOWER(slug) = LOWER($1) AND id != $2`,
			slug, *excludeID,
		).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM subcategories WHERE LOWER(slug) = LOWER($1)`,
			slug,
		).Scan(&count)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check subcategory slug: %w", err)
	}
	return count > 0, nil
}

// CountDependents counts products still referencing the subcategory
func (r *subcategoryRepository) CountDependents(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM products WHERE subcategory_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subcategory dependents: %w", err)
	}
	return count, nil
}
