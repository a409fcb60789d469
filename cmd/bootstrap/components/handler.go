package components

import (
	"vitrine-engine/internal/handler"
	"vitrine-engine/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
	),
	fx.Invoke(handler.NewRouter),
)
