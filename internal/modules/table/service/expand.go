package service

import "sync"

// ExpandTracker remembers which instance rows are expanded. It is never persisted.
type ExpandTracker struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewExpandTracker() *ExpandTracker {
	return &ExpandTracker{ids: make(map[string]struct{})}
}

// Toggle flips the row and reports whether it is now expanded.
func (t *ExpandTracker) Toggle(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.ids[id]; ok {
		delete(t.ids, id)
		return false
	}
	t.ids[id] = struct{}{}
	return true
}

func (t *ExpandTracker) IsExpanded(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.ids[id]
	return ok
}

// Prune forgets rows that are no longer in the live instance list.
func (t *ExpandTracker) Prune(live []string) {
	keep := make(map[string]struct{}, len(live))
	for _, id := range live {
		keep[id] = struct{}{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.ids {
		if _, ok := keep[id]; !ok {
			delete(t.ids, id)
		}
	}
}

func (t *ExpandTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
