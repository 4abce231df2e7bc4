package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a top-level catalog grouping
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Subcategory belongs to exactly one category
type Subcategory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CategoryID  uuid.UUID `json:"categoryId" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Product represents a sellable catalog item. Images is an ordered list of
// URLs stored as a jsonb array.
type Product struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Slug             string     `json:"slug" db:"slug"`
	Description      string     `json:"description" db:"description"`
	Price            float64    `json:"price" db:"price"`
	OriginalPrice    *float64   `json:"originalPrice,omitempty" db:"original_price"`
	SKU              string     `json:"sku" db:"sku"`
	Images           []string   `json:"images" db:"images"`
	StockQuantity    int        `json:"stockQuantity" db:"stock_quantity"`
	InStock          bool       `json:"inStock" db:"in_stock"`
	IsNew            bool       `json:"isNew" db:"is_new"`
	IsSale           bool       `json:"isSale" db:"is_sale"`
	IsFeatured       bool       `json:"isFeatured" db:"is_featured"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	CategoryID       *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	SubcategoryID    *uuid.UUID `json:"subcategoryId,omitempty" db:"subcategory_id"`
	Materials        string     `json:"materials" db:"materials"`
	Dimensions       string     `json:"dimensions" db:"dimensions"`
	CareInstructions string     `json:"careInstructions" db:"care_instructions"`
	SeoTitle         string     `json:"seoTitle" db:"seo_title"`
	SeoDescription   string     `json:"seoDescription" db:"seo_description"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}
