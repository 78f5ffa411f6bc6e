package backend

import (
	"trade_desk/internal/modules/backend/service"
	"trade_desk/internal/modules/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("backend",
		fx.Provide(
			func(cfg *config.Config) service.CredentialStore {
				return service.StaticToken(cfg.Backend.Token)
			},
			func(cfg *config.Config, creds service.CredentialStore, log *zap.Logger) *service.Client {
				return service.NewClient(cfg.Backend.URL, creds,
					service.WithTimeout(cfg.Backend.Timeout),
					service.WithLogger(log.Named("backend")),
				)
			},
		),
	)
}
