package response

import (
	"time"

	"vitrine-engine/internal/usecase/commands"
	"vitrine-engine/internal/usecase/queries"
)

type OrderItemResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type OrderResponse struct {
	ID              string               `json:"id"`
	CreatedAt       time.Time            `json:"created_at"`
	CustomerName    string               `json:"customer_name"`
	CustomerContact string               `json:"customer_contact"`
	Items           []*OrderItemResponse `json:"items"`
	Subtotal        float64              `json:"subtotal"`
	Discount        float64              `json:"discount"`
	Total           float64              `json:"total"`
	Cashback        float64              `json:"cashback"`
	CouponCode      *string              `json:"coupon_code,omitempty"`
	Status          string               `json:"status"`
	DeepLink        string               `json:"deep_link"`
}

func FromSubmitOrderResult(result *commands.SubmitOrderResult) *OrderResponse {
	view := result.Order
	items := make([]*OrderItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, fromOrderItemView(item))
	}
	return &OrderResponse{
		ID:              view.ID,
		CreatedAt:       view.CreatedAt,
		CustomerName:    view.CustomerName,
		CustomerContact: view.CustomerContact,
		Items:           items,
		Subtotal:        reais(view.SubtotalCents),
		Discount:        reais(view.DiscountCents),
		Total:           reais(view.TotalCents),
		Cashback:        reais(view.CashbackCents),
		CouponCode:      view.CouponCode,
		Status:          view.Status,
		DeepLink:        result.DeepLink,
	}
}

func fromOrderItemView(item *queries.OrderItemView) *OrderItemResponse {
	return &OrderItemResponse{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: reais(item.UnitPriceCents),
		Quantity:  item.Quantity,
	}
}
