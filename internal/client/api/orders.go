package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
)

// OrderLine is one product and quantity of a checkout.
type OrderLine struct {
	ProductID string `json:"product"`
	Qty       int    `json:"qty"`
}

// NewOrder is the checkout payload. Prices are computed by the server.
type NewOrder struct {
	Items           []OrderLine           `json:"orderItems"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

// CreateOrder places an order for the caller.
func (c *Client) CreateOrder(ctx context.Context, in NewOrder, token string) (*order.Order, error) {
	var o order.Order
	if err := c.doRequest(ctx, http.MethodPost, "/api/orders", token, in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrder returns order id. The caller must own it or be an admin.
func (c *Client) GetOrder(ctx context.Context, id, token string) (*order.Order, error) {
	var o order.Order
	if err := c.doRequest(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), token, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListMyOrders returns the caller's orders, newest first.
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]order.Order, error) {
	var orders []order.Order
	if err := c.doRequest(ctx, http.MethodGet, "/api/orders/mine", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders returns every order. Admin only.
func (c *Client) ListOrders(ctx context.Context, token string) ([]order.Order, error) {
	var orders []order.Order
	if err := c.doRequest(ctx, http.MethodGet, "/api/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// DeliverOrder marks order id delivered. Admin only.
func (c *Client) DeliverOrder(ctx context.Context, id, token string) (*order.Order, error) {
	var o order.Order
	if err := c.doRequest(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/deliver", token, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
