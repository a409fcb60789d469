package queries

import (
	"time"
)

// Read models (DTO for read side)

type ProductView struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	DisplayName     string            `json:"display_name"`
	PriceCents      int64             `json:"price_cents"`
	ListPriceCents  int64             `json:"list_price_cents"`
	CardPriceCents  *int64            `json:"card_price_cents,omitempty"`
	HasPromotion    bool              `json:"has_promotion"`
	StockQuantity   int               `json:"stock_quantity"`
	CashbackPercent float64           `json:"cashback_percent"`
	ImageURL        string            `json:"image_url,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	Variants        []*ProductView    `json:"variants,omitempty"`
}

// CatalogView is the whole-catalog read model. Degraded reports that the
// backing source was unavailable and the product list is an empty fallback,
// so the caller can surface a warning instead of an error page.
type CatalogView struct {
	Products []*ProductView `json:"products"`
	Degraded bool           `json:"degraded,omitempty"`
}

type CartItemView struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

type CartView struct {
	Items         []*CartItemView `json:"items"`
	SubtotalCents int64           `json:"subtotal_cents"`
	DiscountCents int64           `json:"discount_cents"`
	TotalCents    int64           `json:"total_cents"`
	CashbackCents int64           `json:"cashback_cents"`
	CouponCode    *string         `json:"coupon_code,omitempty"`
	State         string          `json:"state"`
}

type OrderItemView struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type OrderView struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	CustomerName    string           `json:"customer_name"`
	CustomerContact string           `json:"customer_contact"`
	Items           []*OrderItemView `json:"items"`
	SubtotalCents   int64            `json:"subtotal_cents"`
	DiscountCents   int64            `json:"discount_cents"`
	TotalCents      int64            `json:"total_cents"`
	CashbackCents   int64            `json:"cashback_cents"`
	CouponCode      *string          `json:"coupon_code,omitempty"`
	Status          string           `json:"status"`
}
