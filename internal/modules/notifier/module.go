package notifier

import (
	"context"
	"trade_desk/internal/confirm"
	"trade_desk/internal/modules/config"
	"trade_desk/internal/notify"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewNotifier returns the Telegram notifier when a bot token is configured, the log notifier otherwise.
func NewNotifier(lc fx.Lifecycle, cfg *config.Config, broker *confirm.Broker, log *zap.Logger) (notify.Notifier, error) {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		log.Warn("telegram not configured, delete confirmations will be declined")
		return notify.NewLog(), nil
	}

	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, broker)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return tg.Start(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			tg.Stop()
			return nil
		},
	})
	return tg, nil
}

func Module() fx.Option {
	return fx.Module("notifier",
		fx.Provide(
			func(cfg *config.Config) *confirm.Broker {
				return confirm.NewBroker(cfg.ConfirmTimeout)
			},
			NewNotifier,
		),
	)
}
