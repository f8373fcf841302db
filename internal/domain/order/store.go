package order

import (
	"context"
	"errors"
)

// Sentinel errors for order operations.
var (
	// ErrNotFound is returned when an order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrNoItems is returned when creating an order without items.
	ErrNoItems = errors.New("no order items")
)

// Store provides order persistence.
// Implementations: SQLite.
type Store interface {
	// CreateOrder stores a new order.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrder retrieves an order by ID.
	// Returns ErrNotFound if the order doesn't exist.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrdersByUser returns the orders placed by userID, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)

	// ListOrders returns every order, newest first.
	ListOrders(ctx context.Context) ([]Order, error)

	// UpdateOrder saves the payment and delivery status of an order.
	// Returns ErrNotFound if the order doesn't exist.
	UpdateOrder(ctx context.Context, o *Order) error
}
