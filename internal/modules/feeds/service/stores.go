package service

import (
	"sync"
	"time"
	"trade_desk/internal/models"
)

// Stores holds the latest snapshot of each live feed. The streamer is the only writer.
type Stores struct {
	mu        sync.RWMutex
	index     []models.IndexPriceTick
	options   []models.OptionValueRecord
	updatedAt time.Time
}

func NewStores() *Stores {
	return &Stores{}
}

func (s *Stores) IndexTicks() []models.IndexPriceTick {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.IndexPriceTick(nil), s.index...)
}

func (s *Stores) OptionValues() []models.OptionValueRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OptionValueRecord(nil), s.options...)
}

// ReplaceIndex swaps in a new index snapshot. Ticks are kept in arrival order, duplicates included.
func (s *Stores) ReplaceIndex(ticks []models.IndexPriceTick) {
	cp := append([]models.IndexPriceTick(nil), ticks...)
	s.mu.Lock()
	s.index = cp
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Stores) ReplaceOptions(records []models.OptionValueRecord) {
	cp := append([]models.OptionValueRecord(nil), records...)
	s.mu.Lock()
	s.options = cp
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Stores) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
