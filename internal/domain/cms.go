package domain

import (
	"time"

	"github.com/google/uuid"
)

// FooterPage is a CMS-managed static page linked from the storefront footer.
type FooterPage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Content   string    `json:"content" db:"content"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	SortOrder int       `json:"sortOrder" db:"sort_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SocialMediaSetting is one social profile link shown on the storefront.
type SocialMediaSetting struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Platform  string    `json:"platform" db:"platform"`
	URL       string    `json:"url" db:"url"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	SortOrder int       `json:"sortOrder" db:"sort_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
