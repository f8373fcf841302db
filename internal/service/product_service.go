package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// TopProductsLimit is the size of the top-rated carousel.
const TopProductsLimit = 3

// ProductInput holds the editable fields of a product.
type ProductInput struct {
	Name         string  `json:"name" yaml:"name" validate:"required"`
	Image        string  `json:"image" yaml:"image"`
	Brand        string  `json:"brand" yaml:"brand"`
	Category     string  `json:"category" yaml:"category"`
	Description  string  `json:"description" yaml:"description"`
	Price        float64 `json:"price" yaml:"price" validate:"gte=0"`
	CountInStock int     `json:"countInStock" yaml:"countInStock" validate:"gte=0"`
}

// ReviewInput is a customer's review of a product.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ProductService manages the catalogue.
type ProductService struct {
	store    product.Store
	pageSize int
	logger   *slog.Logger
}

// NewProductService creates a new ProductService. pageSize is the default
// page size for List.
func NewProductService(store product.Store, pageSize int, logger *slog.Logger) *ProductService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ProductService{
		store:    store,
		pageSize: pageSize,
		logger:   logger,
	}
}

// List returns one page of products whose name contains keyword.
// page is 1-based; values below 1 select the first page. pageSize <= 0
// uses the service default.
func (s *ProductService) List(ctx context.Context, keyword string, page, pageSize int) (product.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	q := product.ListQuery{
		Keyword:  strings.TrimSpace(keyword),
		Page:     page,
		PageSize: pageSize,
	}
	products, total, err := s.store.ListProducts(ctx, q)
	if err != nil {
		return product.Page{}, err
	}
	return product.Page{
		Products: products,
		Page:     page,
		Pages:    product.PageCount(total, pageSize),
	}, nil
}

// Top returns the best rated products.
func (s *ProductService) Top(ctx context.Context) ([]product.Product, error) {
	return s.store.TopProducts(ctx, TopProductsLimit)
}

// Get returns one product with its reviews.
func (s *ProductService) Get(ctx context.Context, id string) (*product.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// CreateSample creates a placeholder product owned by userID, which the
// administrator then edits.
func (s *ProductService) CreateSample(ctx context.Context, userID string) (*product.Product, error) {
	return s.Create(ctx, userID, ProductInput{
		Name:        "Sample name",
		Image:       "/images/sample.jpg",
		Brand:       "Sample brand",
		Category:    "Sample category",
		Description: "Sample description",
	})
}

// Create validates in and adds a product owned by userID.
func (s *ProductService) Create(ctx context.Context, userID string, in ProductInput) (*product.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p := &product.Product{
		ID:     uuid.New().String(),
		UserID: userID,
	}
	applyProductInput(p, in)
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", "id", p.ID, "name", p.Name)
	return p, nil
}

// Update replaces the editable fields of a product.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*product.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProductInput(p, in)
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product and its reviews.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "id", id)
	return nil
}

// AddReview records reviewer's rating of a product. Each user may review a
// product once; a second attempt returns product.ErrAlreadyReviewed.
func (s *ProductService) AddReview(ctx context.Context, productID string, reviewer *user.User, in ReviewInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	r := product.Review{
		ID:      uuid.New().String(),
		UserID:  reviewer.ID,
		Name:    reviewer.Name,
		Rating:  in.Rating,
		Comment: strings.TrimSpace(in.Comment),
	}
	if err := s.store.AddReview(ctx, productID, r); err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	return nil
}

func applyProductInput(p *product.Product, in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Image = in.Image
	p.Brand = in.Brand
	p.Category = in.Category
	p.Description = in.Description
	p.Price = in.Price
	p.CountInStock = in.CountInStock
}
