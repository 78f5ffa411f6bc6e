package table

import (
	"trade_desk/internal/modules/config"
	"trade_desk/internal/modules/table/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("table",
		fx.Provide(
			service.NewInstanceStore,
			service.NewExpandTracker,
			func(cfg *config.Config) *service.Cells {
				return service.NewCells(service.NewFormatter(cfg.Currency))
			},
			service.NewView,
		),
	)
}
