package response

import (
	"vitrine-engine/internal/usecase/queries"
)

type ProductResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	DisplayName     string             `json:"display_name"`
	Price           float64            `json:"price"`
	ListPrice       float64            `json:"list_price"`
	CardPrice       *float64           `json:"card_price,omitempty"`
	HasPromotion    bool               `json:"has_promotion"`
	StockQuantity   int                `json:"stock_quantity"`
	CashbackPercent float64            `json:"cashback_percent"`
	ImageURL        string             `json:"image_url,omitempty"`
	Attributes      map[string]string  `json:"attributes,omitempty"`
	Variants        []*ProductResponse `json:"variants,omitempty"`
}

type CatalogResponse struct {
	Products []*ProductResponse `json:"products"`
	Warning  string             `json:"warning,omitempty"`
}

func FromCatalogView(view *queries.CatalogView) *CatalogResponse {
	resp := &CatalogResponse{Products: make([]*ProductResponse, 0, len(view.Products))}
	if view.Degraded {
		resp.Warning = "catalog temporarily unavailable"
	}
	for _, p := range view.Products {
		resp.Products = append(resp.Products, fromProductView(p))
	}
	return resp
}

func fromProductView(p *queries.ProductView) *ProductResponse {
	resp := &ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		DisplayName:     p.DisplayName,
		Price:           reais(p.PriceCents),
		ListPrice:       reais(p.ListPriceCents),
		HasPromotion:    p.HasPromotion,
		StockQuantity:   p.StockQuantity,
		CashbackPercent: p.CashbackPercent,
		ImageURL:        p.ImageURL,
		Attributes:      p.Attributes,
	}
	if p.CardPriceCents != nil {
		v := reais(*p.CardPriceCents)
		resp.CardPrice = &v
	}
	for _, variant := range p.Variants {
		resp.Variants = append(resp.Variants, fromProductView(variant))
	}
	return resp
}

// reais converts integer cents to the two-decimal presentation value.
// Accumulation stays in cents everywhere else.
func reais(cents int64) float64 {
	return float64(cents) / 100
}
