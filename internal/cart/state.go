package cart

import (
	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/pkg/money"
)

// Line is one cart entry. Product data is an add-time snapshot: later edits
// to the catalog do not retroactively change a cart.
type Line struct {
	ProductID    uuid.UUID    `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ProductPhoto string       `json:"product_photo,omitempty"`
	VariantName  string       `json:"variant_name"`
	UnitPrice    money.Amount `json:"unit_price"`
	Quantity     int          `json:"quantity"`
}

// LineTotal returns unit price times quantity.
func (l Line) LineTotal() money.Amount {
	return l.UnitPrice.MulInt(l.Quantity)
}

// State is the full cart snapshot persisted per session. Items keep insertion
// order; at most one line exists per (product, variant) pair.
type State struct {
	Items         []Line       `json:"items"`
	PromoCode     string       `json:"promo_code,omitempty"`
	PromoDiscount money.Amount `json:"promo_discount"`
}

// Subtotal sums every line total.
func (s State) Subtotal() money.Amount {
	sum := money.Zero()
	for _, line := range s.Items {
		sum = sum.Add(line.LineTotal())
	}
	return sum
}

// Total applies the promo discount and service fee, floored at zero.
func (s State) Total(serviceFee money.Amount) money.Amount {
	return s.Subtotal().Sub(s.PromoDiscount).Add(serviceFee).ClampNonNegative()
}

// TotalItems sums quantities across lines, not the number of distinct lines.
func (s State) TotalItems() int {
	total := 0
	for _, line := range s.Items {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no items.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s State) findLine(productID uuid.UUID, variantName string) int {
	for i, line := range s.Items {
		if line.ProductID == productID && line.VariantName == variantName {
			return i
		}
	}
	return -1
}
