// Package order contains the order domain types and pricing rules.
package order

import (
	"math"
	"time"
)

// Pricing constants.
const (
	// TaxRate is applied to the items subtotal.
	TaxRate = 0.15
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = 100.0
	// ShippingFee is charged below FreeShippingThreshold.
	ShippingFee = 10.0
)

// Item is one order line.
type Item struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is a placed order.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user"`
	Items           []Item          `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Price fills the price fields of o from its items.
func (o *Order) Price() {
	var items float64
	for _, it := range o.Items {
		items += it.Price * float64(it.Qty)
	}
	o.ItemsPrice = round2(items)
	if o.ItemsPrice > FreeShippingThreshold {
		o.ShippingPrice = 0
	} else {
		o.ShippingPrice = ShippingFee
	}
	o.TaxPrice = round2(TaxRate * o.ItemsPrice)
	o.TotalPrice = round2(o.ItemsPrice + o.ShippingPrice + o.TaxPrice)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
