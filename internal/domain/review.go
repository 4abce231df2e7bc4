package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer product review. Reviews start unapproved and only
// approved ones are served on public product pages.
type Review struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ProductID     uuid.UUID  `json:"productId" db:"product_id"`
	UserID        *uuid.UUID `json:"userId,omitempty" db:"user_id"`
	Rating        int        `json:"rating" db:"rating"`
	Title         string     `json:"title" db:"title"`
	Comment       string     `json:"comment" db:"comment"`
	CustomerName  string     `json:"customerName" db:"customer_name"`
	CustomerEmail string     `json:"customerEmail" db:"customer_email"`
	IsApproved    bool       `json:"isApproved" db:"is_approved"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}
