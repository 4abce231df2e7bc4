package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

type mockCategoryRepository struct {
	categories map[uuid.UUID]*domain.Category
	dependents map[uuid.UUID]int
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[uuid.UUID]*domain.Category),
		dependents: make(map[uuid.UUID]int),
	}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, ok := m.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context, includeInactive bool) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range m.categories {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, c := range m.categories {
		if c.Slug == slug && (excludeID == nil || c.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCategoryRepository) CountDependents(ctx context.Context, id uuid.UUID) (int, error) {
	return m.dependents[id], nil
}

type mockSubcategoryRepository struct {
	subcategories map[uuid.UUID]*domain.Subcategory
	dependents    map[uuid.UUID]int
}

func newMockSubcategoryRepository() *mockSubcategoryRepository {
	return &mockSubcategoryRepository{
		subcategories: make(map[uuid.UUID]*domain.Subcategory),
		dependents:    make(map[uuid.UUID]int),
	}
}

func (m *mockSubcategoryRepository) Create(ctx context.Context, subcategory *domain.Subcategory) error {
	m.subcategories[subcategory.ID] = subcategory
	return nil
}

func (m *mockSubcategoryRepository) Update(ctx context.Context, subcategory *domain.Subcategory) error {
	if _, ok := m.subcategories[subcategory.ID]; !ok {
		return repository.ErrSubcategoryNotFound
	}
	m.subcategories[subcategory.ID] = subcategory
	return nil
}

func (m *mockSubcategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.subcategories[id]; !ok {
		return repository.ErrSubcategoryNotFound
	}
	delete(m.subcategories, id)
	return nil
}

func (m *mockSubcategoryRepository) List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]*domain.Subcategory, error) {
	var out []*domain.Subcategory
	for _, s := range m.subcategories {
		if categoryID != nil && s.CategoryID != *categoryID {
			continue
		}
		if includeInactive || s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSubcategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Subcategory, error) {
	subcategory, ok := m.subcategories[id]
	if !ok {
		return nil, repository.ErrSubcategoryNotFound
	}
	return subcategory, nil
}

func (m *mockSubcategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Subcategory, error) {
	for _, s := range m.subcategories {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, repository.ErrSubcategoryNotFound
}

func (m *mockSubcategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, s := range m.subcategories {
		if s.Slug == slug && (excludeID == nil || s.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubcategoryRepository) CountDependents(ctx context.Context, id uuid.UUID) (int, error) {
	return m.dependents[id], nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
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

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	var out []*domain.Product
	for _, p := range m.products {
		if filter.IncludeInactive || p.IsActive {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockProductRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range m.products {
		if p.Slug == slug && (excludeID == nil || p.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func newTestCatalogService() (CatalogService, *mockCategoryRepository, *mockSubcategoryRepository, *mockProductRepository) {
	categoryRepo := newMockCategoryRepository()
	subcategoryRepo := newMockSubcategoryRepository()
	productRepo := newMockProductRepository()
	return NewCatalogService(categoryRepo, subcategoryRepo, productRepo), categoryRepo, subcategoryRepo, productRepo
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	service, _, _, _ := newTestCatalogService()

	category, err := service.CreateCategory(context.Background(), CategoryInput{Name: "Living Room"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.Slug != "living-room" {
		t.Fatalf("expected slug living-room, got %q", category.Slug)
	}
	if !category.IsActive {
		t.Fatal("categories default to active")
	}
}

func TestCreateCategoryRejectsSlugCollision(t *testing.T) {
	service, categoryRepo, _, _ := newTestCatalogService()
	ctx := context.Background()

	if _, err := service.CreateCategory(ctx, CategoryInput{Name: "Living Room"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// "Living  Room!" slugifies to the same living-room
	_, err := service.CreateCategory(ctx, CategoryInput{Name: "Living  Room!"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	if len(categoryRepo.categories) != 1 {
		t.Fatalf("collision must not create a row, have %d", len(categoryRepo.categories))
	}
}

func TestDeleteCategoryGuardedByDependents(t *testing.T) {
	service, categoryRepo, _, _ := newTestCatalogService()
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, CategoryInput{Name: "Bedroom"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	categoryRepo.dependents[category.ID] = 3

	err = service.DeleteCategory(ctx, category.ID)
	if !errors.Is(err, ErrHasDependents) {
		t.Fatalf("expected ErrHasDependents, got %v", err)
	}
	if _, ok := categoryRepo.categories[category.ID]; !ok {
		t.Fatal("guarded delete must leave the category untouched")
	}

	// With the dependents gone the delete goes through.
	categoryRepo.dependents[category.ID] = 0
	if err := service.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("unguarded delete failed: %v", err)
	}
	if _, ok := categoryRepo.categories[category.ID]; ok {
		t.Fatal("category should be gone")
	}
}

func TestDeleteSubcategoryGuardedByDependents(t *testing.T) {
	service, _, subcategoryRepo, _ := newTestCatalogService()
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, CategoryInput{Name: "Kitchen"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	subcategory, err := service.CreateSubcategory(ctx, SubcategoryInput{
		CategoryID: category.ID,
		Name:       "Cookware",
	})
	if err != nil {
		t.Fatalf("create subcategory failed: %v", err)
	}
	subcategoryRepo.dependents[subcategory.ID] = 1

	if err := service.DeleteSubcategory(ctx, subcategory.ID); !errors.Is(err, ErrHasDependents) {
		t.Fatalf("expected ErrHasDependents, got %v", err)
	}
	if _, ok := subcategoryRepo.subcategories[subcategory.ID]; !ok {
		t.Fatal("guarded delete must leave the subcategory untouched")
	}
}

var suffixedSlug = regexp.MustCompile(`^[a-z0-9-]+-[0-9a-f]{6}$`)

func TestCreateProductCollisionGetsRandomSuffix(t *testing.T) {
	service, _, _, productRepo := newTestCatalogService()
	ctx := context.Background()

	first, err := service.CreateProduct(ctx, ProductInput{Name: "Oak Table", Price: 249})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := service.CreateProduct(ctx, ProductInput{Name: "Oak Table", Price: 199})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	if first.Slug != "oak-table" {
		t.Fatalf("expected oak-table, got %q", first.Slug)
	}
	if second.Slug == first.Slug {
		t.Fatal("colliding product slugs must differ")
	}
	if !suffixedSlug.MatchString(second.Slug) {
		t.Fatalf("expected random hex suffix, got %q", second.Slug)
	}
	if len(productRepo.products) != 2 {
		t.Fatalf("expected both products stored, have %d", len(productRepo.products))
	}
}

func TestCreateProductDefaultsInStockFromQuantity(t *testing.T) {
	service, _, _, _ := newTestCatalogService()
	ctx := context.Background()

	inStock, err := service.CreateProduct(ctx, ProductInput{Name: "Wool Rug", Price: 89, StockQuantity: 4})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !inStock.InStock {
		t.Fatal("product with stock should default to in stock")
	}

	outOfStock, err := service.CreateProduct(ctx, ProductInput{Name: "Silk Rug", Price: 450, StockQuantity: 0})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if outOfStock.InStock {
		t.Fatal("product without stock should default to out of stock")
	}
}

func TestUpdateProductRederivesSlugOnRename(t *testing.T) {
	service, _, _, _ := newTestCatalogService()
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, ProductInput{Name: "Oak Table", Price: 249})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.UpdateProduct(ctx, product.ID, ProductInput{Name: "Walnut Table", Price: 299})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "walnut-table" {
		t.Fatalf("expected walnut-table, got %q", updated.Slug)
	}

	// Same name keeps the slug stable.
	unchanged, err := service.UpdateProduct(ctx, product.ID, ProductInput{Name: "Walnut Table", Price: 319})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if unchanged.Slug != "walnut-table" {
		t.Fatalf("slug must not change without a rename, got %q", unchanged.Slug)
	}
}
