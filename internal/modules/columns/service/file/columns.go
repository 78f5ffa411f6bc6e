package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"trade_desk/internal/modules/columns/service"

	"github.com/bytedance/sonic"
)

// Storage keeps every column list in one JSON file, rewritten atomically on each Set.
// Lists are kept raw, so a list with an outdated shape only affects its own key.
type Storage struct {
	path string

	mu sync.Mutex
}

func NewStorage(path string) *Storage {
	return &Storage{path: path}
}

type snapshot struct {
	UpdatedAt time.Time                  `json:"updated_at"`
	Columns   map[string]json.RawMessage `json:"columns"`
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	raw, ok := snap.Columns[key]
	if !ok {
		return nil, service.ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *Storage) Set(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.readLocked()
	if err != nil {
		// unreadable file: start over rather than keep failing every write
		snap = &snapshot{}
	}
	if snap.Columns == nil {
		snap.Columns = make(map[string]json.RawMessage)
	}
	snap.Columns[key] = append(json.RawMessage(nil), data...)
	snap.UpdatedAt = time.Now().UTC()

	return s.writeLocked(snap)
}

func (s *Storage) readLocked() (*snapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &snapshot{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var snap snapshot
	if err := sonic.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return &snap, nil
}

func (s *Storage) writeLocked(snap *snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	b, err := sonic.ConfigStd.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
