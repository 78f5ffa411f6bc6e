package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Storage when nothing was saved under a key.
var ErrNotFound = errors.New("columns: not found")

// Storage keeps serialized column lists by key. Implementations: file, pg, memory.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}
