package postgres

import (
	"context"
	"fmt"
	"trade_desk/internal/modules/config"
	"trade_desk/pkg/db"

	"go.uber.org/fx"
)

// Open connects to dsn and checks the connection.
func Open(ctx context.Context, dsn string) (*db.PgTxManager, error) {
	poolMaster, err := db.NewPool(ctx, db.PoolConfig{
		DSN:      dsn,
		MaxConns: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poolMaster: %w", err)
	}

	err = poolMaster.Ping(ctx)
	if err != nil {
		poolMaster.Close()
		return nil, err
	}
	return db.NewPgTxManager(poolMaster), nil
}

// Module provides *db.PgTxManager. Install it only when column storage is pg.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (*db.PgTxManager, error) {
				m, err := Open(ctx, cfg.DB)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						m.Close()
						return nil
					},
				})
				return m, nil
			},
		),
	)
}
