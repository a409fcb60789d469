package queries

import (
	"context"
	"log/slog"

	"vitrine-engine/internal/domain/catalog"
	"vitrine-engine/internal/infra/cache"
	"vitrine-engine/internal/pkg/errs"
)

// CatalogReadStore loads the product snapshot from the backing source.
type CatalogReadStore interface {
	Load(ctx context.Context) (*catalog.Index, error)
}

type CatalogQueries interface {
	// ListCatalog returns the browsable catalog: top-level products with
	// their variants grouped underneath, unavailable rows filtered out.
	// An unreachable source degrades to an empty, flagged view.
	ListCatalog(ctx context.Context) (*CatalogView, error)

	// Index returns the current product snapshot for stock ceilings,
	// prices and cashback rates. Errors are marked ErrCatalogUnavailable.
	Index(ctx context.Context) (*catalog.Index, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
	cache *cache.CatalogCache
}

func NewCatalogQueries(store CatalogReadStore, catalogCache *cache.CatalogCache) CatalogQueries {
	return &catalogQueriesImpl{
		store: store,
		cache: catalogCache,
	}
}

func (q *catalogQueriesImpl) Index(ctx context.Context) (*catalog.Index, error) {
	if idx, ok := q.cache.Get(ctx); ok {
		return idx, nil
	}

	idx, err := q.store.Load(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrCatalogUnavailable)
	}

	q.cache.Set(ctx, idx)
	return idx, nil
}

func (q *catalogQueriesImpl) ListCatalog(ctx context.Context) (*CatalogView, error) {
	idx, err := q.Index(ctx)
	if err != nil {
		slog.Warn("catalog source unavailable, serving empty catalog", "error", err)
		return &CatalogView{Products: []*ProductView{}, Degraded: true}, nil
	}

	parents := idx.Parents()
	views := make([]*ProductView, 0, len(parents))
	for _, p := range parents {
		if !p.Available() {
			continue
		}
		view := toProductView(p)
		for _, v := range idx.VariantsOf(p.ID()) {
			if !v.Available() {
				continue
			}
			view.Variants = append(view.Variants, toProductView(v))
		}
		views = append(views, view)
	}

	return &CatalogView{Products: views}, nil
}

func toProductView(p *catalog.Product) *ProductView {
	return &ProductView{
		ID:              p.ID(),
		Name:            p.Name(),
		DisplayName:     p.DisplayName(),
		PriceCents:      p.EffectivePriceCents(),
		ListPriceCents:  p.ListPriceCents(),
		CardPriceCents:  p.CardPriceCents(),
		HasPromotion:    p.HasPromotion(),
		StockQuantity:   p.StockQuantity(),
		CashbackPercent: p.CashbackPercent(),
		ImageURL:        p.ImageURL(),
		Attributes:      p.Attributes(),
	}
}
