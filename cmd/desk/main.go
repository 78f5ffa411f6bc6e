package main

import (
	"context"
	"log"
	"trade_desk/internal/modules/actions"
	"trade_desk/internal/modules/api"
	"trade_desk/internal/modules/backend"
	"trade_desk/internal/modules/bootstrap"
	"trade_desk/internal/modules/columns"
	"trade_desk/internal/modules/config"
	"trade_desk/internal/modules/feeds"
	"trade_desk/internal/modules/health"
	"trade_desk/internal/modules/notifier"
	"trade_desk/internal/modules/postgres"
	"trade_desk/internal/modules/table"
	"trade_desk/pkg/logger"
	"trade_desk/pkg/tracing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	// config is read once up front: it decides which modules are installed
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger.SetServiceName(cfg.Service.Name)
	tracing.SetServiceName(cfg.Service.Name)
	zl, err := logger.Init(cfg.Service.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer(tracing.Config{
			Host:       cfg.Tracing.Host,
			Port:       cfg.Tracing.Port,
			SampleRate: cfg.Tracing.SampleRate,
			SpanPrefix: cfg.Tracing.SpanPrefix,
		})
		if err != nil {
			logger.Error("init tracer: %v", err)
		} else {
			defer closer()
		}
	}

	opts := []fx.Option{
		fx.Supply(cfg, zl),
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		columns.Module(),
		table.Module(),
		health.Module(),
		feeds.Module(),
		backend.Module(),
		notifier.Module(),
		actions.Module(),
		bootstrap.Module(),
		api.Module(),
	}
	if cfg.Columns.Storage == config.StoragePG {
		opts = append(opts, postgres.Module())
	}

	fx.New(opts...).Run()
}
