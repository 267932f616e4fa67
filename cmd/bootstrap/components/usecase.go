package components

import (
	"cylinder-sync/internal/usecase"
	"cylinder-sync/internal/usecase/commands"
	"cylinder-sync/internal/usecase/queries"
	"cylinder-sync/internal/usecase/reconciler"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseEngineModule,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseEngineModule = fx.Module("usecase/reconciler",
	fx.Provide(
		reconciler.NewEngine,
		func(e *reconciler.Engine) commands.ConflictEngine { return e },
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReconcileCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLimitQueries,
	),
)

var ValidatorModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
