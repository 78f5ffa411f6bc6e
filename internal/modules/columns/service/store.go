package service

import (
	"context"
	"errors"
	"fmt"
	"trade_desk/internal/models"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Store reads and writes column lists through a Storage.
type Store struct {
	storage Storage
	log     *zap.Logger
}

func NewStore(storage Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{storage: storage, log: log}
}

// Load returns the list saved under key, or a copy of defaults when nothing usable is stored.
// It never fails: read and decode errors only fall back to defaults.
func (s *Store) Load(ctx context.Context, key string, defaults []models.ColumnDescriptor) []models.ColumnDescriptor {
	data, err := s.storage.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Debug("column config read failed, using defaults", zap.String("key", key), zap.Error(err))
		}
		return models.CloneColumns(defaults)
	}

	var list []models.ColumnDescriptor
	if err := sonic.Unmarshal(data, &list); err != nil {
		s.log.Debug("column config unparsable, using defaults", zap.String("key", key), zap.Error(err))
		return models.CloneColumns(defaults)
	}
	if !valid(list) {
		s.log.Debug("column config invalid, using defaults", zap.String("key", key))
		return models.CloneColumns(defaults)
	}
	return list
}

// Save overwrites whatever is stored under key.
func (s *Store) Save(ctx context.Context, key string, list []models.ColumnDescriptor) error {
	data, err := sonic.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode columns %s: %w", key, err)
	}
	if err := s.storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save columns %s: %w", key, err)
	}
	return nil
}
