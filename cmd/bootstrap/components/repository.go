package components

import (
	"cylinder-sync/internal/infra/repository"
	"cylinder-sync/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewEntityStore,
			fx.As(new(shared.RemoteReader)),
			fx.As(new(shared.RemoteWriter)),
		),
	),
)
