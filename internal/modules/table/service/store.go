package service

import (
	"sync"
	"trade_desk/internal/models"
)

// InstanceStore holds the instance collection shown by the table.
// It is replaced wholesale on every load; readers get copies.
type InstanceStore struct {
	mu       sync.RWMutex
	items    []models.Instance
	replaced int
}

func NewInstanceStore() *InstanceStore {
	return &InstanceStore{}
}

func (s *InstanceStore) Replace(items []models.Instance) {
	cp := models.CloneInstances(items)
	s.mu.Lock()
	s.items = cp
	s.replaced++
	s.mu.Unlock()
}

func (s *InstanceStore) Snapshot() []models.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneInstances(s.items)
}

func (s *InstanceStore) Get(id string) (models.Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inst := range s.items {
		if inst.ID == id {
			return models.CloneInstances([]models.Instance{inst})[0], true
		}
	}
	return models.Instance{}, false
}

func (s *InstanceStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.items))
	for i, inst := range s.items {
		ids[i] = inst.ID
	}
	return ids
}

func (s *InstanceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replacements counts wholesale replacements since start; zero means nothing was loaded yet.
func (s *InstanceStore) Replacements() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.replaced
}
