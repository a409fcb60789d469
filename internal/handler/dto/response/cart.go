package response

import (
	"vitrine-engine/internal/usecase/queries"
)

type CartItemResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartResponse struct {
	Items      []*CartItemResponse `json:"items"`
	Subtotal   float64             `json:"subtotal"`
	Discount   float64             `json:"discount"`
	Total      float64             `json:"total"`
	Cashback   float64             `json:"cashback"`
	CouponCode *string             `json:"coupon_code,omitempty"`
	State      string              `json:"state"`
}

func FromCartView(view *queries.CartView) *CartResponse {
	items := make([]*CartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, &CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: reais(item.UnitPriceCents),
			Quantity:  item.Quantity,
			Subtotal:  reais(item.SubtotalCents),
		})
	}
	return &CartResponse{
		Items:      items,
		Subtotal:   reais(view.SubtotalCents),
		Discount:   reais(view.DiscountCents),
		Total:      reais(view.TotalCents),
		Cashback:   reais(view.CashbackCents),
		CouponCode: view.CouponCode,
		State:      view.State,
	}
}
