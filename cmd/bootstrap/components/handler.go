package components

import (
	"cylinder-sync/internal/handler"
	"cylinder-sync/internal/handler/api"
	"cylinder-sync/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSyncHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimitMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
