package main

import (
	"context"
	"flag"
	"fmt"
	"trade_desk/internal/modules/backend/service"
	"trade_desk/internal/modules/columns"
	colsvc "trade_desk/internal/modules/columns/service"
	"trade_desk/internal/modules/config"
	"trade_desk/internal/modules/postgres"
	"trade_desk/pkg/db"
	"trade_desk/pkg/logger"

	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "Path to the config file (default configs/$CONFIG_FILE)")
	verbose    = flag.Bool("v", false, "Log debug output to stderr")
)

// app holds what every subcommand needs.
type app struct {
	cfg *config.Config
	log *zap.Logger

	closers []func()
}

func newApp() (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
	} else {
		cfg, err = config.NewConfig()
	}
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: zap.NewNop()}
	if *verbose {
		logger.SetServiceName("deskctl")
		if a.log, err = logger.Init("debug"); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.log.Sync()
}

func (a *app) backend() *service.Client {
	return service.NewClient(a.cfg.Backend.URL, service.StaticToken(a.cfg.Backend.Token),
		service.WithTimeout(a.cfg.Backend.Timeout),
		service.WithLogger(a.log.Named("backend")),
	)
}

func (a *app) columns(ctx context.Context) (*colsvc.Columns, error) {
	var txm *db.PgTxManager
	if a.cfg.Columns.Storage == config.StoragePG {
		m, err := postgres.Open(ctx, a.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		a.closers = append(a.closers, m.Close)
		txm = m
	}
	storage, err := columns.OpenStorage(ctx, a.cfg, txm)
	if err != nil {
		return nil, err
	}
	store := colsvc.NewStore(storage, a.log.Named("columns"))
	return colsvc.NewColumns(ctx, store), nil
}
