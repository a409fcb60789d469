//go:build unit

package builder

import (
	"vitrine-engine/internal/domain/catalog"
)

type ProductBuilder struct {
	ID              int64
	Name            string
	ListPriceCents  int64
	CardPriceCents  *int64
	PromoCents      *int64
	StockQuantity   *int
	CashbackPercent float64
	Available       bool
	ParentID        *int64
	Attributes      catalog.Attributes
	ImageURL        string
}

func NewProductBuilder() *ProductBuilder {
	stock := 10
	return &ProductBuilder{
		ID:              1,
		Name:            "Camiseta",
		ListPriceCents:  5990,
		StockQuantity:   &stock,
		CashbackPercent: 0,
		Available:       true,
		ImageURL:        "https://cdn.example.com/camiseta.jpg",
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) BuildDomain() (*catalog.Product, error) {
	p, err := catalog.NewProduct(
		b.ID, b.Name, b.ListPriceCents, b.CardPriceCents, b.StockQuantity,
		b.CashbackPercent, b.Available, b.ParentID, b.Attributes, b.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	if b.PromoCents != nil {
		p.ApplyPromotion(*b.PromoCents)
	}
	return p, nil
}

// MustBuild panics on a constructor error. Test setup only.
func (b *ProductBuilder) MustBuild() *catalog.Product {
	p, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}

func (b *ProductBuilder) WithID(id int64) *ProductBuilder {
	b.ID = id
	return b
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

func (b *ProductBuilder) WithPriceCents(cents int64) *ProductBuilder {
	b.ListPriceCents = cents
	return b
}

func (b *ProductBuilder) WithPromoCents(cents int64) *ProductBuilder {
	b.PromoCents = &cents
	return b
}

func (b *ProductBuilder) WithStock(quantity int) *ProductBuilder {
	b.StockQuantity = &quantity
	return b
}

func (b *ProductBuilder) WithoutStockInfo() *ProductBuilder {
	b.StockQuantity = nil
	return b
}

func (b *ProductBuilder) WithCashback(percent float64) *ProductBuilder {
	b.CashbackPercent = percent
	return b
}

func (b *ProductBuilder) WithParent(parentID int64) *ProductBuilder {
	b.ParentID = &parentID
	return b
}

func (b *ProductBuilder) WithAttributes(attrs catalog.Attributes) *ProductBuilder {
	b.Attributes = attrs
	return b
}

func (b *ProductBuilder) AsUnavailable() *ProductBuilder {
	b.Available = false
	return b
}
