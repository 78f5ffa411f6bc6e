package pg

import (
	"context"
	"errors"
	"fmt"
	"trade_desk/internal/modules/columns/service"
	"trade_desk/internal/modules/columns/service/pg/sql"
	"trade_desk/pkg/db"

	"github.com/jackc/pgx/v5"
)

// Storage keeps column lists in the column_prefs table.
type Storage struct {
	db  db.TxManager
	sql *sql.Queries
}

func NewStorage(txm db.TxManager) *Storage {
	return &Storage{
		db:  txm,
		sql: sql.New(),
	}
}

func (s *Storage) Get(ctx context.Context, key string) (data []byte, err error) {
	defer func() {
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			err = fmt.Errorf("pg.Columns.Get: %w", err)
		}
	}()

	err = s.db.RunReadOnly(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		row, err := s.sql.GetByKey(ctxTx, tx, key)
		if err != nil {
			return err
		}
		data = row.Columns
		return nil
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	return data, err
}

func (s *Storage) Set(ctx context.Context, key string, data []byte) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Columns.Set: %w", err)
		}
	}()

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return s.sql.Upsert(ctxTx, tx, &sql.UpsertParams{
			Key:     key,
			Columns: data,
		})
	})
}
