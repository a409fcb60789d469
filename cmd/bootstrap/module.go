package bootstrap

import (
	"vitrine-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StorehouseModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
