package product

import (
	"context"
	"errors"
)

// Sentinel errors for product store operations.
var (
	// ErrNotFound is returned when a product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyReviewed is returned when a user reviews the same product twice.
	ErrAlreadyReviewed = errors.New("product already reviewed")
)

// Store provides catalogue persistence.
// Implementations: SQLite.
type Store interface {
	// CreateProduct stores a new product. Reviews are ignored.
	CreateProduct(ctx context.Context, p *Product) error

	// GetProduct retrieves a product with its reviews.
	// Returns ErrNotFound if the product doesn't exist.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// UpdateProduct saves the editable product fields.
	// Returns ErrNotFound if the product doesn't exist.
	UpdateProduct(ctx context.Context, p *Product) error

	// DeleteProduct removes a product and its reviews.
	// Returns ErrNotFound if the product doesn't exist.
	DeleteProduct(ctx context.Context, id string) error

	// ListProducts returns the products on the requested page and the total
	// number of products matching the keyword.
	ListProducts(ctx context.Context, q ListQuery) ([]Product, int, error)

	// TopProducts returns up to limit products ordered by rating.
	TopProducts(ctx context.Context, limit int) ([]Product, error)

	// AddReview appends a review and recomputes the product rating and
	// review count atomically.
	// Returns ErrNotFound if the product doesn't exist and
	// ErrAlreadyReviewed if the user already reviewed it.
	AddReview(ctx context.Context, productID string, r Review) error
}
