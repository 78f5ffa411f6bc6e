package feeds

import (
	"context"
	"trade_desk/internal/modules/config"
	"trade_desk/internal/modules/feeds/service"
	healthsvc "trade_desk/internal/modules/health/service"
	tablesvc "trade_desk/internal/modules/table/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module streams the live index and option feeds into *service.Stores.
func Module() fx.Option {
	return fx.Module("feeds",
		fx.Provide(
			service.NewStores,
			func(s *service.Stores) tablesvc.FeedSource {
				return s
			},
			func(cfg *config.Config, stores *service.Stores, state *healthsvc.State, log *zap.Logger) *service.Streamer {
				return service.NewStreamer(service.StreamConfig{
					URL:            cfg.Feeds.URL,
					PingInterval:   cfg.Feeds.PingInterval,
					ReconnectDelay: cfg.Feeds.ReconnectDelay,
				}, stores, state, log.Named("feeds"))
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, s *service.Streamer, log *zap.Logger) {
			if cfg.Feeds.URL == "" {
				log.Warn("feeds.url not set, live values will stay at 0")
				return
			}
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						defer close(done)
						s.Run(ctx)
					}()
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()
					select {
					case <-done:
					case <-stopCtx.Done():
					}
					return nil
				},
			})
		}),
	)
}
