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

var ErrReviewNotFound = errors.New("review not found")

// ReviewFilter describes a paginated admin review listing
type ReviewFilter struct {
	Approved *bool
	Page     int
	Limit    int
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]*domain.Review, int, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

var reviewConstraintMessages = map[string]string{
	"reviews_product_id_fkey":   "the reviewed product does not exist",
	"reviews_user_id_fkey":      "the reviewing user does not exist",
	"reviews_rating_range_chk":  "rating must be between 1 and 5",
}

const reviewColumns = `id, product_id, user_id, rating, title, comment,
		customer_name, customer_email, is_approved, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*domain.Review, error) {
	review := &domain.Review{}
	err := row.Scan(
		&review.ID,
		&review.ProductID,
		&review.UserID,
		&review.Rating,
		&review.Title,
		&review.Comment,
		&review.CustomerName,
		&review.CustomerEmail,
		&review.IsApproved,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Create inserts a new review
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, title, comment,
			customer_name, customer_email, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Title,
		review.Comment,
		review.CustomerName,
		review.CustomerEmail,
		review.IsApproved,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, reviewConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// Update updates rating, text fields, and the approval flag
func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, title = $3, comment = $4, is_approved = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsApproved,
		review.UpdatedAt,
	)

	if err != nil {
		if ce := constraintError(err, reviewConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// Delete removes a review
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// FindByID retrieves a review by ID
func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)

	review, err := scanReview(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}

	return review, nil
}

// ListApprovedByProduct retrieves approved reviews for a product, newest first
func (r *reviewRepository) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE product_id = $1 AND is_approved = TRUE
		ORDER BY created_at DESC
	`, reviewColumns)

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// List retrieves reviews for the back-office, newest first
func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter) ([]*domain.Review, int, error) {
	where := []string{}
	args := []any{}

	if filter.Approved != nil {
		args = append(args, *filter.Approved)
		where = append(where, fmt.Sprintf("is_approved = $%d", len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reviews %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, reviewColumns, whereClause, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, total, nil
}
