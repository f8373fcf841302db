package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
)

func TestOrderService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustRegister(t, "Ann", "a@b.com")
	mouse, _ := env.products.Create(ctx, "admin", ProductInput{Name: "Mouse", Price: 20})

	o, err := env.orders.Create(ctx, u.ID, OrderInput{
		Items:           []OrderItemInput{{ProductID: mouse.ID, Qty: 2}},
		ShippingAddress: order.ShippingAddress{Address: "1 Main St", City: "X", PostalCode: "1", Country: "US"},
		PaymentMethod:   "PayPal",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if o.Items[0].Name != "Mouse" || o.Items[0].Price != 20 {
		t.Errorf("item not filled from catalogue: %+v", o.Items[0])
	}
	if o.ItemsPrice != 40 || o.ShippingPrice != 10 || o.TaxPrice != 6 || o.TotalPrice != 56 {
		t.Errorf("prices = %v/%v/%v/%v", o.ItemsPrice, o.ShippingPrice, o.TaxPrice, o.TotalPrice)
	}

	mine, err := env.orders.ListMine(ctx, u.ID)
	if err != nil || len(mine) != 1 {
		t.Errorf("ListMine() = %v, %v", mine, err)
	}
}

func TestOrderService_Create_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.orders.Create(ctx, "u1", OrderInput{}); !errors.Is(err, order.ErrNoItems) {
		t.Errorf("Create() no items error = %v, want ErrNoItems", err)
	}
	_, err := env.orders.Create(ctx, "u1", OrderInput{Items: []OrderItemInput{{ProductID: "missing", Qty: 1}}})
	if !errors.Is(err, product.ErrNotFound) {
		t.Errorf("Create() unknown product error = %v, want product.ErrNotFound", err)
	}
	_, err = env.orders.Create(ctx, "u1", OrderInput{Items: []OrderItemInput{{ProductID: "p", Qty: 0}}})
	if !IsValidation(err) {
		t.Errorf("Create() zero qty error = %v, want validation", err)
	}
}

func TestOrderService_GetVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "Ann", "a@b.com")
	other := env.mustRegister(t, "Bob", "bob@b.com")
	admin := env.mustRegister(t, "Root", "root@b.com")
	admin.IsAdmin = true
	mouse, _ := env.products.Create(ctx, "admin", ProductInput{Name: "Mouse", Price: 20})
	o, _ := env.orders.Create(ctx, owner.ID, OrderInput{Items: []OrderItemInput{{ProductID: mouse.ID, Qty: 1}}})

	if _, err := env.orders.Get(ctx, o.ID, owner); err != nil {
		t.Errorf("owner Get() error = %v", err)
	}
	if _, err := env.orders.Get(ctx, o.ID, admin); err != nil {
		t.Errorf("admin Get() error = %v", err)
	}
	if _, err := env.orders.Get(ctx, o.ID, other); !errors.Is(err, order.ErrNotFound) {
		t.Errorf("other Get() error = %v, want ErrNotFound", err)
	}
}

func TestOrderService_Deliver(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.orders.now = func() time.Time { return fixed }

	u := env.mustRegister(t, "Ann", "a@b.com")
	mouse, _ := env.products.Create(ctx, "admin", ProductInput{Name: "Mouse", Price: 20})
	o, _ := env.orders.Create(ctx, u.ID, OrderInput{Items: []OrderItemInput{{ProductID: mouse.ID, Qty: 1}}})

	delivered, err := env.orders.Deliver(ctx, o.ID)
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if !delivered.IsDelivered || !delivered.DeliveredAt.Equal(fixed) {
		t.Errorf("Deliver() = %+v", delivered)
	}

	env.orders.now = func() time.Time { return fixed.Add(time.Hour) }
	again, err := env.orders.Deliver(ctx, o.ID)
	if err != nil || !again.DeliveredAt.Equal(fixed) {
		t.Errorf("second Deliver() = %+v, %v", again, err)
	}

	if _, err := env.orders.Deliver(ctx, "missing"); !errors.Is(err, order.ErrNotFound) {
		t.Errorf("Deliver(missing) error = %v, want ErrNotFound", err)
	}

	all, err := env.orders.List(ctx)
	if err != nil || len(all) != 1 {
		t.Errorf("List() = %v, %v", all, err)
	}
}
