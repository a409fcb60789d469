package catalogstore

import (
	"context"
	"fmt"
	"time"

	"vitrine-engine/internal/domain/catalog"
	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/storehouse"
	"vitrine-engine/internal/infra/tabular"
	"vitrine-engine/internal/pkg/config"
)

// Fetcher is the slice of the storehouse client the read stores need.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*storehouse.Document, error)
}

// CatalogStore loads the product table wholesale, left-joins active
// promotions by product id and normalizes every row into a catalog.Product.
// The load is all-or-nothing: a malformed required field fails the whole
// load rather than producing a partial index.
type CatalogStore struct {
	fetcher Fetcher
	cfg     config.StorehouseConfig
	loc     *time.Location
}

func NewCatalogStore(fetcher Fetcher, cfg config.StorehouseConfig, loc *time.Location) *CatalogStore {
	return &CatalogStore{fetcher: fetcher, cfg: cfg, loc: loc}
}

func (s *CatalogStore) Load(ctx context.Context) (*catalog.Index, error) {
	doc, err := s.fetcher.Fetch(ctx, s.cfg.ProductsPath)
	if err != nil {
		return nil, err
	}

	table, err := tabular.Decode(doc.Content)
	if err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, table.Len())
	for row := 0; row < table.Len(); row++ {
		p, err := s.productFromRow(table, row)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindMalformed,
				fmt.Sprintf("catalog row %d invalid", row+1), err)
		}
		products = append(products, p)
	}

	index := catalog.NewIndex(products)
	if err := s.applyPromotions(ctx, index); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *CatalogStore) productFromRow(table *tabular.Table, row int) (*catalog.Product, error) {
	id, err := tabular.ParseInt64(table.Field(row, "ID"))
	if err != nil {
		return nil, fmt.Errorf("bad product id: %w", err)
	}

	name := table.Field(row, "NOME")

	priceCents, err := tabular.ParseMoneyCents(table.Field(row, "PRECOVISTA", "PRECO"))
	if err != nil {
		return nil, fmt.Errorf("bad price: %w", err)
	}

	var cardPrice *int64
	if raw := table.Field(row, "PRECOCARTAO"); raw != "" {
		cents, err := tabular.ParseMoneyCents(raw)
		if err != nil {
			return nil, fmt.Errorf("bad card price: %w", err)
		}
		cardPrice = &cents
	}

	var stock *int
	if raw := table.Field(row, "QUANTIDADE"); raw != "" {
		qty, err := tabular.ParseInt(raw)
		if err != nil {
			return nil, fmt.Errorf("bad stock quantity: %w", err)
		}
		stock = &qty
	}

	var cashbackPct float64
	if raw := table.Field(row, "CASHBACKPERCENT", "CASHBACK_PERCENT", "CASHBACK"); raw != "" {
		pct, err := tabular.ParseFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("bad cashback percent: %w", err)
		}
		cashbackPct = pct
	}

	available := true
	if raw := table.Field(row, "DISPONIVEL"); raw != "" {
		available = tabular.ParseBool(raw)
	}

	var parentID *int64
	if raw := table.Field(row, "PAIID", "PAI_ID", "ID_PAI"); raw != "" {
		pid, err := tabular.ParseInt64(raw)
		if err != nil {
			return nil, fmt.Errorf("bad parent id: %w", err)
		}
		if pid > 0 {
			parentID = &pid
		}
	}

	attrs := tabular.ParseAttributes(table.Field(row, "DETALHESGRADE", "DETALHES_GRADE"))
	image := table.Field(row, "LINKIMAGEM", "LINK_IMAGEM", "IMAGEM")

	return catalog.NewProduct(id, name, priceCents, cardPrice, stock, cashbackPct, available, parentID, attrs, image)
}

// applyPromotions left-joins the promotions table. A missing promotions
// document means no promotions; malformed promotion rows are skipped
// instead of failing the catalog (the join is additive).
func (s *CatalogStore) applyPromotions(ctx context.Context, index *catalog.Index) error {
	doc, err := s.fetcher.Fetch(ctx, s.cfg.PromotionsPath)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	}

	table, err := tabular.Decode(doc.Content)
	if err != nil {
		return err
	}

	for row := 0; row < table.Len(); row++ {
		status := table.Field(row, "STATUS")
		if status != "" && tabular.NormalizeHeader(status) != "ATIVO" && tabular.NormalizeHeader(status) != "ACTIVE" {
			continue
		}

		id, err := tabular.ParseInt64(table.Field(row, "ID_PRODUTO", "IDPRODUTO", "ID"))
		if err != nil {
			continue
		}
		promoCents, err := tabular.ParseMoneyCents(table.Field(row, "PRECO_PROMOCIONAL", "PRECOPROMOCIONAL"))
		if err != nil {
			continue
		}

		if p, ok := index.Lookup(id); ok {
			p.ApplyPromotion(promoCents)
		}
	}
	return nil
}
