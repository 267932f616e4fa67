package bootstrap

import (
	"cylinder-sync/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything a sync run needs without the HTTP surface.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	GovernorModule,
	components.RepositoryModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	JWTModule,
	components.ValidatorModule,
	components.HandlerModule,
)
