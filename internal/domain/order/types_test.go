package order

import "testing"

func TestOrderPrice(t *testing.T) {
	tests := []struct {
		name         string
		items        []Item
		wantItems    float64
		wantShipping float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:         "below free shipping threshold",
			items:        []Item{{Price: 20, Qty: 2}},
			wantItems:    40,
			wantShipping: ShippingFee,
			wantTax:      6,
			wantTotal:    56,
		},
		{
			name:         "above free shipping threshold",
			items:        []Item{{Price: 89.99, Qty: 1}, {Price: 29.99, Qty: 1}},
			wantItems:    119.98,
			wantShipping: 0,
			wantTax:      18,
			wantTotal:    137.98,
		},
		{
			name:         "exactly at threshold still pays shipping",
			items:        []Item{{Price: 50, Qty: 2}},
			wantItems:    100,
			wantShipping: ShippingFee,
			wantTax:      15,
			wantTotal:    125,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Items: tt.items}
			o.Price()
			if o.ItemsPrice != tt.wantItems {
				t.Errorf("ItemsPrice = %v, want %v", o.ItemsPrice, tt.wantItems)
			}
			if o.ShippingPrice != tt.wantShipping {
				t.Errorf("ShippingPrice = %v, want %v", o.ShippingPrice, tt.wantShipping)
			}
			if o.TaxPrice != tt.wantTax {
				t.Errorf("TaxPrice = %v, want %v", o.TaxPrice, tt.wantTax)
			}
			if o.TotalPrice != tt.wantTotal {
				t.Errorf("TotalPrice = %v, want %v", o.TotalPrice, tt.wantTotal)
			}
		})
	}
}
