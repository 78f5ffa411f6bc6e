package service

import (
	"context"
	"sync"
	"trade_desk/internal/models"

	"go.uber.org/zap"
)

// ColumnSet is one persisted column list (instance or trade detail columns).
// Every change is applied through a pure transition and then written back.
type ColumnSet struct {
	key      string
	defaults []models.ColumnDescriptor
	store    *Store
	log      *zap.Logger

	mu      sync.RWMutex
	current []models.ColumnDescriptor
}

// OpenColumnSet restores the set stored under key.
func OpenColumnSet(ctx context.Context, store *Store, key string, defaults []models.ColumnDescriptor) *ColumnSet {
	return &ColumnSet{
		key:      key,
		defaults: models.CloneColumns(defaults),
		store:    store,
		log:      store.log,
		current:  store.Load(ctx, key, defaults),
	}
}

func (c *ColumnSet) Key() string { return c.key }

// Columns returns the full ordered list, hidden columns included.
func (c *ColumnSet) Columns() []models.ColumnDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.CloneColumns(c.current)
}

func (c *ColumnSet) Visible() []models.ColumnDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Visible(c.current)
}

func (c *ColumnSet) Toggle(ctx context.Context, id string) []models.ColumnDescriptor {
	return c.apply(ctx, func(list []models.ColumnDescriptor) []models.ColumnDescriptor {
		return ToggleVisibility(list, id)
	})
}

func (c *ColumnSet) Move(ctx context.Context, id string, to int) []models.ColumnDescriptor {
	return c.apply(ctx, func(list []models.ColumnDescriptor) []models.ColumnDescriptor {
		return Move(list, id, to)
	})
}

func (c *ColumnSet) Resize(ctx context.Context, id string, width int) []models.ColumnDescriptor {
	return c.apply(ctx, func(list []models.ColumnDescriptor) []models.ColumnDescriptor {
		return Resize(list, id, width)
	})
}

// Reset restores the built-in defaults.
func (c *ColumnSet) Reset(ctx context.Context) []models.ColumnDescriptor {
	return c.apply(ctx, func([]models.ColumnDescriptor) []models.ColumnDescriptor {
		return Reset(c.defaults)
	})
}

// apply swaps in the transitioned list and persists it. A failed write is logged only;
// the in-memory list stays authoritative for the session.
func (c *ColumnSet) apply(ctx context.Context, fn func([]models.ColumnDescriptor) []models.ColumnDescriptor) []models.ColumnDescriptor {
	c.mu.Lock()
	next := fn(c.current)
	c.current = next
	c.mu.Unlock()

	if err := c.store.Save(ctx, c.key, next); err != nil {
		c.log.Warn("column config not saved", zap.String("key", c.key), zap.Error(err))
	}
	return models.CloneColumns(next)
}

// Columns holds the two independent column sets of the table.
type Columns struct {
	Instance    *ColumnSet
	TradeDetail *ColumnSet
}

func NewColumns(ctx context.Context, store *Store) *Columns {
	return &Columns{
		Instance:    OpenColumnSet(ctx, store, InstanceColumnsKey, DefaultInstanceColumns()),
		TradeDetail: OpenColumnSet(ctx, store, TradeDetailColumnsKey, DefaultTradeDetailColumns()),
	}
}
