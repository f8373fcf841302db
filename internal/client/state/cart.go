package state

import (
	"math"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
)

// CartItem is one product line in the cart.
type CartItem struct {
	ProductID    string  `json:"product"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Qty          int     `json:"qty"`
}

// CartState is the checkout in progress.
type CartState struct {
	Items           []CartItem            `json:"cartItems"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

func defaultCart() CartState {
	return CartState{Items: []CartItem{}}
}

// Subtotal is the sum of price times quantity over the items, rounded to
// cents.
func (c CartState) Subtotal() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Qty)
	}
	return math.Round(total*100) / 100
}

// Count is the total quantity across all items.
func (c CartState) Count() int {
	var n int
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

// CartAddItemAction adds item, replacing any line for the same product.
func CartAddItemAction(item CartItem) Action {
	return Action{Type: CartAddItem, Payload: item}
}

// CartRemoveItemAction removes the line for productID.
func CartRemoveItemAction(productID string) Action {
	return Action{Type: CartRemoveItem, Payload: productID}
}

// CartSaveShippingAddressAction records where the order ships.
func CartSaveShippingAddressAction(addr order.ShippingAddress) Action {
	return Action{Type: CartSaveShippingAddress, Payload: addr}
}

// CartSavePaymentMethodAction records the chosen payment method.
func CartSavePaymentMethodAction(method string) Action {
	return Action{Type: CartSavePaymentMethod, Payload: method}
}

// CartClearItemsAction empties the cart after a placed order.
func CartClearItemsAction() Action {
	return Action{Type: CartClearItems}
}

// reduceCart never mutates c.Items in place; every change builds a new
// slice so earlier states stay intact.
func reduceCart(c CartState, a Action) CartState {
	switch a.Type {
	case CartAddItem:
		item, ok := a.Payload.(CartItem)
		if !ok {
			return c
		}
		items := make([]CartItem, 0, len(c.Items)+1)
		replaced := false
		for _, it := range c.Items {
			if it.ProductID == item.ProductID {
				items = append(items, item)
				replaced = true
				continue
			}
			items = append(items, it)
		}
		if !replaced {
			items = append(items, item)
		}
		c.Items = items
		return c
	case CartRemoveItem:
		id, ok := a.Payload.(string)
		if !ok {
			return c
		}
		items := make([]CartItem, 0, len(c.Items))
		for _, it := range c.Items {
			if it.ProductID != id {
				items = append(items, it)
			}
		}
		c.Items = items
		return c
	case CartSaveShippingAddress:
		addr, ok := a.Payload.(order.ShippingAddress)
		if !ok {
			return c
		}
		c.ShippingAddress = addr
		return c
	case CartSavePaymentMethod:
		method, ok := a.Payload.(string)
		if !ok {
			return c
		}
		c.PaymentMethod = method
		return c
	case CartClearItems:
		c.Items = []CartItem{}
		return c
	case Cart.ResetType():
		return defaultCart()
	}
	return c
}
