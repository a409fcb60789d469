package components

import (
	"time"

	"vitrine-engine/internal/domain/cashback"
	"vitrine-engine/internal/pkg/clock"
	"vitrine-engine/internal/pkg/config"
	"vitrine-engine/internal/pkg/deeplink"
	"vitrine-engine/internal/usecase/commands"
	"vitrine-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) *time.Location {
		return cfg.Catalog.Location()
	},
	fx.Annotate(
		cashback.NewRateCalculator,
		fx.As(new(cashback.Calculator)),
	),
	fx.Annotate(
		NewDeepLinkGenerator,
		fx.As(new(commands.DeepLinkGenerator)),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewCartQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartCommands,
		commands.NewCheckoutCommands,
	),
)

func NewDeepLinkGenerator(cfg config.Config) *deeplink.WhatsAppGenerator {
	return deeplink.NewWhatsAppGenerator(cfg.Checkout)
}
