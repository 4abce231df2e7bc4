package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrFooterPageNotFound    = errors.New("footer page not found")
	ErrSocialSettingNotFound = errors.New("social media setting not found")
)

// FooterPageRepository defines the interface for footer page data access
type FooterPageRepository interface {
	Create(ctx context.Context, page *domain.FooterPage) error
	Update(ctx context.Context, page *domain.FooterPage) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, includeInactive bool) ([]*domain.FooterPage, error)
	FindBySlug(ctx context.Context, slug string) (*domain.FooterPage, error)
}

// SocialMediaRepository defines the interface for social link data access
type SocialMediaRepository interface {
	Upsert(ctx context.Context, setting *domain.SocialMediaSetting) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, includeInactive bool) ([]*domain.SocialMediaSetting, error)
}

type footerPageRepository struct {
	db *sql.DB
}

// NewFooterPageRepository creates a new instance of FooterPageRepository
func NewFooterPageRepository(db *sql.DB) FooterPageRepository {
	return &footerPageRepository{db: db}
}

var footerPageConstraintMessages = map[string]string{
	"footer_pages_slug_key": "a footer page with this slug already exists",
}

// Create inserts a new footer page
func (r *footerPageRepository) Create(ctx context.Context, page *domain.FooterPage) error {
	query := `
		INSERT INTO footer_pages (id, title, slug, content, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		page.ID, page.Title, page.Slug, page.Content,
		page.IsActive, page.SortOrder, page.CreatedAt, page.UpdatedAt,
	)
	if err != nil {
		if ce := constraintError(err, footerPageConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to create footer page: %w", err)
	}

	return nil
}

// Update updates an existing footer page
func (r *footerPageRepository) Update(ctx context.Context, page *domain.FooterPage) error {
	query := `
		UPDATE footer_pages
		SET title = $2, slug = $3, content = $4, is_active = $5, sort_order = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		page.ID, page.Title, page.Slug, page.Content,
		page.IsActive, page.SortOrder, page.UpdatedAt,
	)
	if err != nil {
		if ce := constraintError(err, footerPageConstraintMessages); ce != nil {
			return ce
		}
		return fmt.Errorf("failed to update footer page: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrFooterPageNotFound
	}

	return nil
}

// Delete removes a footer page
func (r *footerPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM footer_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete footer page: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrFooterPageNotFound
	}

	return nil
}

// List retrieves footer pages by sort order
func (r *footerPageRepository) List(ctx context.Context, includeInactive bool) ([]*domain.FooterPage, error) {
	query := `
		SELECT id, title, slug, content, is_active, sort_order, created_at, updated_at
		FROM footer_pages
	`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, title ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list footer pages: %w", err)
	}
	defer rows.Close()

	pages := []*domain.FooterPage{}
	for rows.Next() {
		page := &domain.FooterPage{}
		err := rows.Scan(
			&page.ID, &page.Title, &page.Slug, &page.Content,
			&page.IsActive, &page.SortOrder, &page.CreatedAt, &page.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan footer page: %w", err)
		}
		pages = append(pages, page)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating footer pages: %w", err)
	}

	return pages, nil
}

// FindBySlug retrieves a footer page by slug, case-insensitively
func (r *footerPageRepository) FindBySlug(ctx context.Context, slug string) (*domain.FooterPage, error) {
	query := `
		SELECT id, title, slug, content, is_active, sort_order, created_at, updated_at
		FROM footer_pages
		WHERE LOWER(slug) = LOWER($1)
	`

	page := &domain.FooterPage{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&page.ID, &page.Title, &page.Slug, &page.Content,
		&page.IsActive, &page.SortOrder, &page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFooterPageNotFound
		}
		return nil, fmt.Errorf("failed to find footer page by slug: %w", err)
	}

	return page, nil
}

type socialMediaRepository struct {
	db *sql.DB
}

// NewSocialMediaRepository creates a new instance of SocialMediaRepository
func NewSocialMediaRepository(db *sql.DB) SocialMediaRepository {
	return &socialMediaRepository{db: db}
}

// Upsert inserts or updates the setting for a platform. One row per platform.
func (r *socialMediaRepository) Upsert(ctx context.Context, setting *domain.SocialMediaSetting) error {
	query := `
		INSERT INTO social_media_settings (id, platform, url, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (platform) DO UPDATE
		SET url = EXCLUDED.url, is_active = EXCLUDED.is_active,
		    sort_order = EXCLUDED.sort_order, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		setting.ID, setting.Platform, setting.URL,
		setting.IsActive, setting.SortOrder, setting.CreatedAt, setting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert social media setting: %w", err)
	}

	return nil
}

// Delete removes a social media setting
func (r *socialMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM social_media_settings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete social media setting: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrSocialSettingNotFound
	}

	return nil
}

// List retrieves social media settings by sort order
func (r *socialMediaRepository) List(ctx context.Context, includeInactive bool) ([]*domain.SocialMediaSetting, error) {
	query := `
		SELECT id, platform, url, is_active, sort_order, created_at, updated_at
		FROM social_media_settings
	`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, platform ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list social media settings: %w", err)
	}
	defer rows.Close()

	settings := []*domain.SocialMediaSetting{}
	for rows.Next() {
		setting := &domain.SocialMediaSetting{}
		err := rows.Scan(
			&setting.ID, &setting.Platform, &setting.URL,
			&setting.IsActive, &setting.SortOrder, &setting.CreatedAt, &setting.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan social media setting: %w", err)
		}
		settings = append(settings, setting)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating social media settings: %w", err)
	}

	return settings, nil
}
