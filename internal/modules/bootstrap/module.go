package bootstrap

import (
	"context"
	actionsvc "trade_desk/internal/modules/actions/service"
	"trade_desk/internal/modules/bootstrap/service"
	healthsvc "trade_desk/internal/modules/health/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module loads the instances once everything has started and closes the dispatcher on stop.
func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			func(d *actionsvc.Dispatcher, log *zap.Logger) *service.Loader {
				return service.NewLoader(d, log.Named("bootstrap"))
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, l *service.Loader, d *actionsvc.Dispatcher, health *healthsvc.State, log *zap.Logger) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						if err := l.Load(ctx); err != nil {
							log.Error("initial instance load", zap.Error(err))
							if ctx.Err() == nil {
								health.SetLoadFailed(err)
							}
							return
						}
						log.Info("instances loaded")
					}()
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					d.Close()
					return nil
				},
			})
		}),
	)
}
