package actions

import (
	"context"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/client/state"
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
)

// OrderFromCart builds a checkout payload from the cart.
func OrderFromCart(cart state.CartState) api.NewOrder {
	lines := make([]api.OrderLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, api.OrderLine{ProductID: it.ProductID, Qty: it.Qty})
	}
	return api.NewOrder{
		Items:           lines,
		ShippingAddress: cart.ShippingAddress,
		PaymentMethod:   cart.PaymentMethod,
	}
}

// OrderCreate places an order. On success the cart items are cleared; the
// shipping address and payment method are kept for the next checkout.
func (c *Coordinator) OrderCreate(ctx context.Context, in api.NewOrder) (*order.Order, error) {
	o, err := run(ctx, c, "OrderCreate", state.OrderCreate, func(ctx context.Context, token string) (*order.Order, error) {
		return c.api.CreateOrder(ctx, in, token)
	})
	if err != nil {
		return nil, err
	}
	c.store.Dispatch(state.CartClearItemsAction())
	return o, nil
}

// OrderDetails fetches order id.
func (c *Coordinator) OrderDetails(ctx context.Context, id string) (*order.Order, error) {
	return run(ctx, c, "OrderDetails", state.OrderDetails, func(ctx context.Context, token string) (*order.Order, error) {
		return c.api.GetOrder(ctx, id, token)
	})
}

// OrderListMine fetches the caller's orders.
func (c *Coordinator) OrderListMine(ctx context.Context) ([]order.Order, error) {
	return run(ctx, c, "OrderListMine", state.OrderListMine, func(ctx context.Context, token string) ([]order.Order, error) {
		return c.api.ListMyOrders(ctx, token)
	})
}

// OrderList fetches every order. Admin only.
func (c *Coordinator) OrderList(ctx context.Context) ([]order.Order, error) {
	return run(ctx, c, "OrderList", state.OrderList, func(ctx context.Context, token string) ([]order.Order, error) {
		return c.api.ListOrders(ctx, token)
	})
}

// OrderDeliver marks order id delivered. Admin only.
func (c *Coordinator) OrderDeliver(ctx context.Context, id string) (*order.Order, error) {
	return run(ctx, c, "OrderDeliver", state.OrderDeliver, func(ctx context.Context, token string) (*order.Order, error) {
		return c.api.DeliverOrder(ctx, id, token)
	})
}
