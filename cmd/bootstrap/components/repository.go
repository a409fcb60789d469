package components

import (
	"context"

	"vitrine-engine/internal/infra/catalogstore"
	"vitrine-engine/internal/infra/ledger"
	"vitrine-engine/internal/infra/session"
	"vitrine-engine/internal/infra/storehouse"
	"vitrine-engine/internal/pkg/config"
	"vitrine-engine/internal/usecase/commands"
	"vitrine-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			NewCatalogStore,
			fx.As(new(queries.CatalogReadStore)),
		),
		fx.Annotate(
			NewCouponStore,
			fx.As(new(commands.CouponRepository)),
		),
		fx.Annotate(
			NewOrderLedger,
			fx.As(new(commands.OrderLedger)),
		),
		fx.Annotate(
			NewSessionStore,
			fx.As(new(commands.SessionStore)),
			fx.As(new(queries.SessionStore)),
		),
	),
)

func NewCatalogStore(client *storehouse.Client, cfg config.Config) *catalogstore.CatalogStore {
	return catalogstore.NewCatalogStore(client, cfg.Storehouse, cfg.Catalog.Location())
}

func NewCouponStore(client *storehouse.Client, cfg config.Config) *catalogstore.CouponStore {
	return catalogstore.NewCouponStore(client, cfg.Storehouse, cfg.Catalog.Location())
}

func NewOrderLedger(client *storehouse.Client, cfg config.Config) *ledger.Ledger {
	return ledger.NewLedger(client, cfg.Storehouse)
}

func NewSessionStore(lc fx.Lifecycle) *session.MemoryStore {
	store := session.NewMemoryStore()

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			store.Close()
			return nil
		},
	})

	return store
}
