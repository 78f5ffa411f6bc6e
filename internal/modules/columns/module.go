package columns

import (
	"context"
	"fmt"
	"trade_desk/internal/modules/columns/service"
	"trade_desk/internal/modules/columns/service/file"
	"trade_desk/internal/modules/columns/service/memory"
	"trade_desk/internal/modules/columns/service/pg"
	"trade_desk/internal/modules/config"
	"trade_desk/pkg/db"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type storageParams struct {
	fx.In

	Ctx context.Context
	Cfg *config.Config
	// only present when the postgres module is installed
	TxManager *db.PgTxManager `optional:"true"`
}

func NewStorage(p storageParams) (service.Storage, error) {
	return OpenStorage(p.Ctx, p.Cfg, p.TxManager)
}

// OpenStorage picks the column storage backend named in config. txm may be nil unless storage is pg.
func OpenStorage(ctx context.Context, cfg *config.Config, txm *db.PgTxManager) (service.Storage, error) {
	switch cfg.Columns.Storage {
	case config.StorageFile:
		return file.NewStorage(cfg.Columns.Path), nil
	case config.StoragePG:
		if txm == nil {
			return nil, fmt.Errorf("pg column storage requires the postgres module")
		}
		if err := pg.Migrate(ctx, txm.Conn()); err != nil {
			return nil, err
		}
		return pg.NewStorage(txm), nil
	case config.StorageMemory:
		return memory.NewStorage(), nil
	default:
		return nil, fmt.Errorf("unknown column storage %q", cfg.Columns.Storage)
	}
}

func Module() fx.Option {
	return fx.Module("columns",
		fx.Provide(
			NewStorage,
			func(s service.Storage, log *zap.Logger) *service.Store {
				return service.NewStore(s, log.Named("columns"))
			},
			func(ctx context.Context, store *service.Store) *service.Columns {
				return service.NewColumns(ctx, store)
			},
		),
	)
}
