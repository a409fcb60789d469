package cashback

import (
	"math"

	"vitrine-engine/internal/domain/cart"
	"vitrine-engine/internal/domain/catalog"
)

// Calculator derives earned cashback from cart contents and the catalog's
// cashback rates.
type Calculator interface {
	EarnedCents(c *cart.Cart, idx *catalog.Index) int64
}

type RateCalculator struct{}

func NewRateCalculator() *RateCalculator {
	return &RateCalculator{}
}

// EarnedCents sums cashback_percent/100 × unit_price × quantity per line
// item, rounding each line to a cent. A line item whose product no longer
// resolves in the catalog contributes 0. The catalog can be stale relative
// to the cart across a session, and that is not an error.
func (rc *RateCalculator) EarnedCents(c *cart.Cart, idx *catalog.Index) int64 {
	var earned int64
	for _, item := range c.Items() {
		product, ok := idx.Lookup(item.ProductID())
		if !ok {
			continue
		}
		pct := product.CashbackPercent()
		if pct <= 0 {
			continue
		}
		earned += int64(math.Round(pct / 100.0 * float64(item.SubtotalCents())))
	}
	return earned
}
