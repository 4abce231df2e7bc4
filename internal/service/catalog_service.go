package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSlugTaken     = errors.New("slug is already in use")
	ErrHasDependents = errors.New("record still has dependent records")
)

// CategoryInput carries the writable category fields
type CategoryInput struct {
	Name        string
	Description string
	ImageURL    string
	IsActive    *bool
}

// SubcategoryInput carries the writable subcategory fields
type SubcategoryInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	ImageURL    string
	IsActive    *bool
}

// ProductInput carries the writable product fields
type ProductInput struct {
	Name             string
	Description      string
	Price            float64
	OriginalPrice    *float64
	SKU              string
	Images           []string
	StockQuantity    int
	InStock          *bool
	IsNew            bool
	IsSale           bool
	IsFeatured       bool
	IsActive         *bool
	CategoryID       *uuid.UUID
	SubcategoryID    *uuid.UUID
	Materials        string
	Dimensions       string
	CareInstructions string
	SeoTitle         string
	SeoDescription   string
}

// CatalogService owns slug derivation, uniqueness rules, and delete guards
// for categories, subcategories, and products.
type CatalogService interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateSubcategory(ctx context.Context, input SubcategoryInput) (*domain.Subcategory, error)
	UpdateSubcategory(ctx context.Context, id uuid.UUID, input SubcategoryInput) (*domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	categoryRepo    repository.CategoryRepository
	subcategoryRepo repository.SubcategoryRepository
	productRepo     repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	subcategoryRepo repository.SubcategoryRepository,
	productRepo repository.ProductRepository,
) CatalogService {
	return &catalogService{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		productRepo:     productRepo,
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// CreateCategory derives the slug from the name and rejects collisions.
func (s *catalogService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	slug := Slugify(input.Name)
	taken, err := s.categoryRepo.SlugExists(ctx, slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    boolOrDefault(input.IsActive, true),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory re-derives the slug when the name changes
func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != category.Name {
		slug := Slugify(input.Name)
		taken, err := s.categoryRepo.SlugExists(ctx, slug, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		category.Slug = slug
	}

	category.Name = input.Name
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.IsActive = boolOrDefault(input.IsActive, category.IsActive)
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory refuses to delete a category that still has products or
// subcategories, leaving everything unchanged.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	dependents, err := s.categoryRepo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return fmt.Errorf("%w: %d products or subcategories still reference this category", ErrHasDependents, dependents)
	}

	return s.categoryRepo.Delete(ctx, id)
}

// CreateSubcategory derives the slug from the name and rejects collisions.
func (s *catalogService) CreateSubcategory(ctx context.Context, input SubcategoryInput) (*domain.Subcategory, error) {
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	slug := Slugify(input.Name)
	taken, err := s.subcategoryRepo.SlugExists(ctx, slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	subcategory := &domain.Subcategory{
		ID:          uuid.New(),
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    boolOrDefault(input.IsActive, true),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.subcategoryRepo.Create(ctx, subcategory); err != nil {
		return nil, err
	}

	return subcategory, nil
}

// UpdateSubcategory re-derives the slug when the name changes
func (s *catalogService) UpdateSubcategory(ctx context.Context, id uuid.UUID, input SubcategoryInput) (*domain.Subcategory, error) {
	subcategory, err := s.subcategoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != subcategory.Name {
		slug := Slugify(input.Name)
		taken, err := s.subcategoryRepo.SlugExists(ctx, slug, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		subcategory.Slug = slug
	}

	subcategory.CategoryID = input.CategoryID
	subcategory.Name = input.Name
	subcategory.Description = input.Description
	subcategory.ImageURL = input.ImageURL
	subcategory.IsActive = boolOrDefault(input.IsActive, subcategory.IsActive)
	subcategory.UpdatedAt = time.Now()

	if err := s.subcategoryRepo.Update(ctx, subcategory); err != nil {
		return nil, err
	}

	return subcategory, nil
}

// DeleteSubcategory refuses to delete a subcategory that still has products
func (s *catalogService) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.subcategoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	dependents, err := s.subcategoryRepo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return fmt.Errorf("%w: %d products still reference this subcategory", ErrHasDependents, dependents)
	}

	return s.subcategoryRepo.Delete(ctx, id)
}

// CreateProduct derives the slug from the name; on collision a random suffix
// is appended instead of rejecting, so bulk imports with repeated names work.
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	slug := Slugify(input.Name)
	taken, err := s.productRepo.SlugExists(ctx, slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		slug = slug + "-" + randomSuffix()
	}

	product := &domain.Product{
		ID:               uuid.New(),
		Name:             input.Name,
		Slug:             slug,
		Description:      input.Description,
		Price:            input.Price,
		OriginalPrice:    input.OriginalPrice,
		SKU:              input.SKU,
		Images:           input.Images,
		StockQuantity:    input.StockQuantity,
		InStock:          boolOrDefault(input.InStock, input.StockQuantity > 0),
		IsNew:            input.IsNew,
		IsSale:           input.IsSale,
		IsFeatured:       input.IsFeatured,
		IsActive:         boolOrDefault(input.IsActive, true),
		CategoryID:       input.CategoryID,
		SubcategoryID:    input.SubcategoryID,
		Materials:        input.Materials,
		Dimensions:       input.Dimensions,
		CareInstructions: input.CareInstructions,
		SeoTitle:         input.SeoTitle,
		SeoDescription:   input.SeoDescription,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct re-derives the slug when the name changes; collisions get a
// random suffix like product create. Last write wins.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != product.Name {
		slug := Slugify(input.Name)
		taken, err := s.productRepo.SlugExists(ctx, slug, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			slug = slug + "-" + randomSuffix()
		}
		product.Slug = slug
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.SKU = input.SKU
	product.Images = input.Images
	product.StockQuantity = input.StockQuantity
	product.InStock = boolOrDefault(input.InStock, input.StockQuantity > 0)
	product.IsNew = input.IsNew
	product.IsSale = input.IsSale
	product.IsFeatured = input.IsFeatured
	product.IsActive = boolOrDefault(input.IsActive, product.IsActive)
	product.CategoryID = input.CategoryID
	product.SubcategoryID = input.SubcategoryID
	product.Materials = input.Materials
	product.Dimensions = input.Dimensions
	product.CareInstructions = input.CareInstructions
	product.SeoTitle = input.SeoTitle
	product.SeoDescription = input.SeoDescription
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product; FK violations from order items surface
// as a repository ConflictError.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}
