package transport

import (
	"context"
	"sort"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// In-memory repositories shared by the handler tests.

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

// List applies the active filter, newest-first order, and offset pagination
// the way the SQL implementation does.
func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	var all []*domain.Product
	for _, p := range m.products {
		if !filter.IncludeInactive && !p.IsActive {
			continue
		}
		all = append(all, p)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return all[start:end], total, nil
}

func (m *mockProductRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range m.products {
		if p.Slug == slug && (excludeID == nil || p.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

type mockReviewRepository struct {
	reviews map[uuid.UUID]*domain.Review
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{reviews: make(map[uuid.UUID]*domain.Review)}
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.reviews[review.ID] = review
	return nil
}

func (m *mockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	if _, ok := m.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	m.reviews[review.ID] = review
	return nil
}

func (m *mockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *mockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	review, ok := m.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	return review, nil
}

func (m *mockReviewRepository) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range m.reviews {
		if r.ProductID == productID && r.IsApproved {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]*domain.Review, int, error) {
	var out []*domain.Review
	for _, r := range m.reviews {
		if filter.Approved != nil && r.IsApproved != *filter.Approved {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}
