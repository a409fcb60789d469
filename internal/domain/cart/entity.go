package cart

import (
	"errors"
	"fmt"

	"vitrine-engine/internal/domain/coupon"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// InsufficientStockError reports how many more units can still be added for
// the product, so the caller can surface it inline.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

type LineItem struct {
	productID      int64
	name           string
	unitPriceCents int64
	quantity       int
}

func (li *LineItem) ProductID() int64      { return li.productID }
func (li *LineItem) Name() string          { return li.name }
func (li *LineItem) UnitPriceCents() int64 { return li.unitPriceCents }
func (li *LineItem) Quantity() int         { return li.quantity }

func (li *LineItem) SubtotalCents() int64 {
	return li.unitPriceCents * int64(li.quantity)
}

// AppliedCoupon is the session-scoped result of a successful coupon
// application. It lives only while the coupon is applied; clearing the cart
// drops it.
type AppliedCoupon struct {
	Code          coupon.Code
	DiscountCents int64
}

// Cart maps product id to line item, preserving insertion order for display.
// All mutations are all-or-nothing: a rejected operation leaves the cart
// exactly as it was.
type Cart struct {
	items   map[int64]*LineItem
	order   []int64
	applied *AppliedCoupon
}

func New() *Cart {
	return &Cart{items: make(map[int64]*LineItem)}
}

// Add inserts a line item or grows an existing one. The quantity after the
// operation never exceeds the stock ceiling supplied at call time; when it
// would, the cart is left untouched and the remaining headroom is reported.
func (c *Cart) Add(productID int64, quantity int, unitPriceCents int64, name string, stockCeiling int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	existing, ok := c.items[productID]
	if !ok {
		if quantity > stockCeiling {
			return &InsufficientStockError{Available: stockCeiling}
		}
		c.items[productID] = &LineItem{
			productID:      productID,
			name:           name,
			unitPriceCents: unitPriceCents,
			quantity:       quantity,
		}
		c.order = append(c.order, productID)
		return nil
	}

	if existing.quantity+quantity > stockCeiling {
		return &InsufficientStockError{Available: stockCeiling - existing.quantity}
	}
	existing.quantity += quantity
	return nil
}

// SetQuantity clamps silently to [1, ceiling] instead of rejecting, the
// policy for live edits from quantity controls. Unknown products are a no-op.
func (c *Cart) SetQuantity(productID int64, quantity, stockCeiling int) {
	item, ok := c.items[productID]
	if !ok {
		return
	}
	if stockCeiling < 1 {
		stockCeiling = 1
	}
	if quantity < 1 {
		quantity = 1
	}
	if quantity > stockCeiling {
		quantity = stockCeiling
	}
	item.quantity = quantity
}

// Remove deletes a line item; absent products are a no-op, not an error.
func (c *Cart) Remove(productID int64) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart and invalidates any applied coupon.
func (c *Cart) Clear() {
	c.items = make(map[int64]*LineItem)
	c.order = nil
	c.applied = nil
}

// SubtotalCents accumulates in full integer precision; two-decimal rounding
// is a presentation concern.
func (c *Cart) SubtotalCents() int64 {
	var total int64
	for _, item := range c.items {
		total += item.SubtotalCents()
	}
	return total
}

// TotalCents is the subtotal minus any applied discount, clamped at zero.
func (c *Cart) TotalCents() int64 {
	total := c.SubtotalCents()
	if c.applied != nil {
		total -= c.applied.DiscountCents
	}
	if total < 0 {
		return 0
	}
	return total
}

func (c *Cart) ApplyCoupon(applied AppliedCoupon) {
	c.applied = &AppliedCoupon{Code: applied.Code, DiscountCents: applied.DiscountCents}
}

func (c *Cart) RemoveCoupon() {
	c.applied = nil
}

func (c *Cart) AppliedCoupon() *AppliedCoupon {
	if c.applied == nil {
		return nil
	}
	cp := *c.applied
	return &cp
}

// Items returns the line items in insertion order.
func (c *Cart) Items() []*LineItem {
	out := make([]*LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Cart) Item(productID int64) (*LineItem, bool) {
	item, ok := c.items[productID]
	return item, ok
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Len() int {
	return len(c.items)
}
