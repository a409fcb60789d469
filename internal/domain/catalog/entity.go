package catalog

import (
	"errors"
	"sort"
)

var (
	ErrInvalidProductID = errors.New("product id must be positive")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrEmptyProductName = errors.New("product name cannot be empty")
)

// UnlimitedStock is the ceiling used when the source row carries no stock
// quantity. Large enough to never clamp a real order, small enough to keep
// integer arithmetic over quantities safe.
const UnlimitedStock = 999_999

type Product struct {
	id             int64
	name           string
	listPriceCents int64
	cardPriceCents *int64
	promoCents     *int64
	stockQuantity  int
	cashbackPct    float64
	available      bool
	parentID       *int64
	attributes     Attributes
	imageURL       string
}

// NewProduct normalizes a raw catalog row into a Product: negative or missing
// cashback becomes 0, a missing stock quantity becomes UnlimitedStock, a
// missing image becomes the empty placeholder.
func NewProduct(
	id int64,
	name string,
	listPriceCents int64,
	cardPriceCents *int64,
	stockQuantity *int,
	cashbackPct float64,
	available bool,
	parentID *int64,
	attributes Attributes,
	imageURL string,
) (*Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}
	if name == "" {
		return nil, ErrEmptyProductName
	}
	if listPriceCents < 0 {
		return nil, ErrNegativePrice
	}

	stock := UnlimitedStock
	if stockQuantity != nil {
		stock = *stockQuantity
		if stock < 0 {
			stock = 0
		}
	}
	if cashbackPct < 0 {
		cashbackPct = 0
	}

	return &Product{
		id:             id,
		name:           name,
		listPriceCents: listPriceCents,
		cardPriceCents: cardPriceCents,
		stockQuantity:  stock,
		cashbackPct:    cashbackPct,
		available:      available,
		parentID:       parentID,
		attributes:     attributes,
		imageURL:       imageURL,
	}, nil
}

// ApplyPromotion records an active promotional price. Non-positive prices are
// ignored rather than rejected so a malformed promotion row never poisons the
// whole catalog load.
func (p *Product) ApplyPromotion(promoCents int64) {
	if promoCents <= 0 {
		return
	}
	p.promoCents = &promoCents
}

// EffectivePriceCents is the price captured into the cart: the promotional
// price when one is active, the list price otherwise.
func (p *Product) EffectivePriceCents() int64 {
	if p.promoCents != nil {
		return *p.promoCents
	}
	return p.listPriceCents
}

func (p *Product) HasPromotion() bool {
	return p.promoCents != nil
}

// DisplayName is the cart-facing name: the base name plus the variant
// attributes in stable order, e.g. "Camiseta (Cor: Azul, Tamanho: M)".
func (p *Product) DisplayName() string {
	if len(p.attributes) == 0 {
		return p.name
	}

	keys := make([]string, 0, len(p.attributes))
	for k := range p.attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := p.name + " ("
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k + ": " + p.attributes[k]
	}
	return out + ")"
}

func (p *Product) IsVariant() bool {
	return p.parentID != nil
}

func (p *Product) InStock() bool {
	return p.stockQuantity > 0
}

func (p *Product) ID() int64                { return p.id }
func (p *Product) Name() string             { return p.name }
func (p *Product) ListPriceCents() int64    { return p.listPriceCents }
func (p *Product) CardPriceCents() *int64   { return p.cardPriceCents }
func (p *Product) PromoPriceCents() *int64  { return p.promoCents }
func (p *Product) StockQuantity() int       { return p.stockQuantity }
func (p *Product) CashbackPercent() float64 { return p.cashbackPct }
func (p *Product) Available() bool          { return p.available }
func (p *Product) ParentID() *int64         { return p.parentID }
func (p *Product) Attributes() Attributes   { return p.attributes }
func (p *Product) ImageURL() string         { return p.imageURL }
