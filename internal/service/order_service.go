package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// OrderItemInput is one requested order line.
type OrderItemInput struct {
	ProductID string `json:"product" validate:"required"`
	Qty       int    `json:"qty" validate:"min=1"`
}

// OrderInput is the payload of a checkout.
type OrderInput struct {
	Items           []OrderItemInput      `json:"orderItems" validate:"dive"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

// OrderService places and tracks orders.
type OrderService struct {
	orders   order.Store
	products product.Store
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderService creates a new OrderService. Product lookups fill each
// line's name, image and price from the catalogue.
func NewOrderService(orders order.Store, products product.Store, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create places an order for userID. An empty item list returns
// order.ErrNoItems; an unknown product returns product.ErrNotFound.
func (s *OrderService) Create(ctx context.Context, userID string, in OrderInput) (*order.Order, error) {
	if len(in.Items) == 0 {
		return nil, order.ErrNoItems
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           make([]order.Item, 0, len(in.Items)),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		CreatedAt:       s.now(),
	}
	for _, it := range in.Items {
		p, err := s.products.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("order item %s: %w", it.ProductID, err)
		}
		o.Items = append(o.Items, order.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Qty:       it.Qty,
		})
	}
	o.Price()

	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("order created", "id", o.ID, "user_id", userID, "total", o.TotalPrice)
	return o, nil
}

// Get returns an order visible to caller: its owner or any administrator.
// Other callers get order.ErrNotFound.
func (s *OrderService) Get(ctx context.Context, id string, caller *user.User) (*order.Order, error) {
	o, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != caller.ID && !caller.IsAdmin {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// ListMine returns the orders placed by userID.
func (s *OrderService) ListMine(ctx context.Context, userID string) ([]order.Order, error) {
	return s.orders.ListOrdersByUser(ctx, userID)
}

// List returns every order.
func (s *OrderService) List(ctx context.Context) ([]order.Order, error) {
	return s.orders.ListOrders(ctx)
}

// Deliver marks an order delivered. Delivering twice keeps the first
// delivery time.
func (s *OrderService) Deliver(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.IsDelivered {
		return o, nil
	}
	now := s.now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	if err := s.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("deliver order: %w", err)
	}
	s.logger.Info("order delivered", "id", id)
	return o, nil
}
