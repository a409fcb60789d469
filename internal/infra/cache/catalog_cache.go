package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"vitrine-engine/internal/domain/catalog"
)

const catalogKey = "vitrine:catalog:index"

// CatalogCache keeps the parsed catalog snapshot in redis so that browsing
// does not hit the file host on every request. Best-effort only: any redis
// failure falls through to a direct load and never surfaces to the caller.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache accepts a nil redis client and degrades to a no-op, for
// deployments without redis and for tests.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

type cachedProduct struct {
	ID             int64             `json:"id"`
	Name           string            `json:"nome"`
	ListPriceCents int64             `json:"preco_centavos"`
	CardPriceCents *int64            `json:"preco_cartao_centavos,omitempty"`
	PromoCents     *int64            `json:"preco_promocional_centavos,omitempty"`
	StockQuantity  int               `json:"quantidade"`
	CashbackPct    float64           `json:"cashback_percent"`
	Available      bool              `json:"disponivel"`
	ParentID       *int64            `json:"pai_id,omitempty"`
	Attributes     map[string]string `json:"detalhes,omitempty"`
	ImageURL       string            `json:"link_imagem,omitempty"`
}

func (c *CatalogCache) Get(ctx context.Context) (*catalog.Index, bool) {
	if c.redis == nil {
		return nil, false
	}

	raw, err := c.redis.Get(ctx, catalogKey)
	if err != nil {
		return nil, false
	}

	var rows []cachedProduct
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		slog.Warn("discarding malformed catalog cache entry", "error", err)
		_ = c.redis.Delete(ctx, catalogKey)
		return nil, false
	}

	products := make([]*catalog.Product, 0, len(rows))
	for _, row := range rows {
		stock := row.StockQuantity
		p, err := catalog.NewProduct(
			row.ID, row.Name, row.ListPriceCents, row.CardPriceCents,
			&stock, row.CashbackPct, row.Available, row.ParentID,
			row.Attributes, row.ImageURL,
		)
		if err != nil {
			return nil, false
		}
		if row.PromoCents != nil {
			p.ApplyPromotion(*row.PromoCents)
		}
		products = append(products, p)
	}

	return catalog.NewIndex(products), true
}

func (c *CatalogCache) Set(ctx context.Context, idx *catalog.Index) {
	if c.redis == nil {
		return
	}

	rows := make([]cachedProduct, 0, idx.Len())
	for _, p := range idx.Products() {
		rows = append(rows, cachedProduct{
			ID:             p.ID(),
			Name:           p.Name(),
			ListPriceCents: p.ListPriceCents(),
			CardPriceCents: p.CardPriceCents(),
			PromoCents:     p.PromoPriceCents(),
			StockQuantity:  p.StockQuantity(),
			CashbackPct:    p.CashbackPercent(),
			Available:      p.Available(),
			ParentID:       p.ParentID(),
			Attributes:     p.Attributes(),
			ImageURL:       p.ImageURL(),
		})
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, catalogKey, string(raw), c.ttl); err != nil {
		slog.Warn("failed to write catalog cache", "error", err)
	}
}

// Invalidate drops the cached snapshot, forcing the next load to hit the
// file host.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, catalogKey)
}
