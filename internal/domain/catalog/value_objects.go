package catalog

// Attributes is the decoded DETALHESGRADE map of a variant row
// (e.g. {"Cor": "Azul", "Tamanho": "M"}).
type Attributes map[string]string

// Index is the immutable product snapshot of one catalog load, keyed by
// product id. It is rebuilt wholesale on every load; there is no partial
// update path.
type Index struct {
	products []*Product
	byID     map[int64]*Product
}

func NewIndex(products []*Product) *Index {
	byID := make(map[int64]*Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}
	return &Index{products: products, byID: byID}
}

// EmptyIndex is the degraded catalog used when the backing source is
// unavailable or malformed.
func EmptyIndex() *Index {
	return NewIndex(nil)
}

func (i *Index) Lookup(id int64) (*Product, bool) {
	p, ok := i.byID[id]
	return p, ok
}

func (i *Index) Products() []*Product {
	return i.products
}

func (i *Index) Len() int {
	return len(i.products)
}

// VariantsOf returns the variant rows grouped under a parent product, in
// catalog order.
func (i *Index) VariantsOf(parentID int64) []*Product {
	var out []*Product
	for _, p := range i.products {
		if p.ParentID() != nil && *p.ParentID() == parentID {
			out = append(out, p)
		}
	}
	return out
}

// Parents returns the top-level rows (products without a parent id), in
// catalog order.
func (i *Index) Parents() []*Product {
	var out []*Product
	for _, p := range i.products {
		if !p.IsVariant() {
			out = append(out, p)
		}
	}
	return out
}

// StockCeiling resolves the purchasable ceiling for a product at this
// snapshot. Unknown and unavailable products both sell zero, whatever their
// stock column says.
func (i *Index) StockCeiling(id int64) int {
	p, ok := i.byID[id]
	if !ok || !p.Available() {
		return 0
	}
	return p.StockQuantity()
}
