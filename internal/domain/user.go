package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User represents a storefront account
type User struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	FirstName       string    `json:"firstName" db:"first_name"`
	LastName        string    `json:"lastName" db:"last_name"`
	Role            string    `json:"role" db:"role"`
	IsTradeCustomer bool      `json:"isTradeCustomer" db:"is_trade_customer"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user may access back-office routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// RefreshToken is a stored, revocable session token
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
}
