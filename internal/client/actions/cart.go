package actions

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/codes"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/client/state"
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
)

// ErrOutOfStock is returned by AddToCart for a product with no stock.
var ErrOutOfStock = errors.New("product is out of stock")

// AddToCart fetches product id and puts qty of it in the cart, replacing
// any existing line for the same product. qty is capped at the stock. The
// cart has no error field, so a failed fetch is only returned.
func (c *Coordinator) AddToCart(ctx context.Context, id string, qty int) (state.CartItem, error) {
	ctx, span := c.span(ctx, "AddToCart")
	defer span.End()

	if qty < 1 {
		err := fmt.Errorf("quantity must be at least 1, got %d", qty)
		span.SetStatus(codes.Error, err.Error())
		return state.CartItem{}, err
	}

	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, api.Message(err))
		return state.CartItem{}, err
	}
	if p.CountInStock < 1 {
		err := fmt.Errorf("add %q: %w", p.Name, ErrOutOfStock)
		span.SetStatus(codes.Error, err.Error())
		return state.CartItem{}, err
	}
	if qty > p.CountInStock {
		qty = p.CountInStock
	}

	item := state.CartItem{
		ProductID:    p.ID,
		Name:         p.Name,
		Image:        p.Image,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		Qty:          qty,
	}
	c.store.Dispatch(state.CartAddItemAction(item))
	return item, nil
}

// RemoveFromCart drops the line for product id.
func (c *Coordinator) RemoveFromCart(ctx context.Context, id string) {
	_, span := c.span(ctx, "RemoveFromCart")
	defer span.End()
	c.store.Dispatch(state.CartRemoveItemAction(id))
}

// SaveShippingAddress stores the address used at checkout.
func (c *Coordinator) SaveShippingAddress(ctx context.Context, addr order.ShippingAddress) {
	_, span := c.span(ctx, "SaveShippingAddress")
	defer span.End()
	c.store.Dispatch(state.CartSaveShippingAddressAction(addr))
}

// SavePaymentMethod stores the payment method used at checkout.
func (c *Coordinator) SavePaymentMethod(ctx context.Context, method string) {
	_, span := c.span(ctx, "SavePaymentMethod")
	defer span.End()
	c.store.Dispatch(state.CartSavePaymentMethodAction(method))
}
