package models

// Line quantities are clamped to this range everywhere a quantity enters
// the cart.
const (
	MinQuantity = 1
	MaxQuantity = 999
)

// Line is one product-quantity pairing in the cart. Name, price and image
// are copied from the product at add time so the cart stays renderable and
// priceable even after the catalog reloads or the product disappears from
// the feed.
type Line struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"qty"`
}

// Total is the line's contribution to the cart subtotal.
func (l Line) Total() float64 {
	return l.Price * float64(l.Quantity)
}

// ClampQuantity corrects q into [MinQuantity, MaxQuantity]. Non-positive
// input (including the zero a failed parse produces) corrects to
// MinQuantity rather than being rejected.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
