package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"trade_desk/internal/modules/columns/service"
)

func TestStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "columns.json")
	s := NewStorage(path)

	if _, err := s.Get(ctx, service.InstanceColumnsKey); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("Get before any Set: err = %v, want ErrNotFound", err)
	}

	inst := []byte(`[{"id":"indexName","label":"Index","width":120,"visible":false}]`)
	detail := []byte(`[{"id":"qty","label":"Qty","width":70,"visible":true}]`)
	if err := s.Set(ctx, service.InstanceColumnsKey, inst); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, service.TradeDetailColumnsKey, detail); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// a fresh Storage reads what the first one wrote
	s2 := NewStorage(path)
	got, err := s2.Get(ctx, service.InstanceColumnsKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	assertSameJSON(t, got, inst)

	got, err = s2.Get(ctx, service.TradeDetailColumnsKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	assertSameJSON(t, got, detail)

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestStorageCorruptedFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "columns.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStorage(path)

	if _, err := s.Get(ctx, service.InstanceColumnsKey); err == nil {
		t.Fatal("expected decode error")
	}

	// the Store falls back to defaults on read errors
	store := service.NewStore(s, nil)
	if got := store.Load(ctx, service.InstanceColumnsKey, service.DefaultInstanceColumns()); !reflect.DeepEqual(got, service.DefaultInstanceColumns()) {
		t.Errorf("Load = %+v, want defaults", got)
	}

	// writing replaces the broken file
	if err := store.Save(ctx, service.InstanceColumnsKey, service.DefaultInstanceColumns()[:2]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.Load(ctx, service.InstanceColumnsKey, nil); len(got) != 2 {
		t.Errorf("Load after repair = %+v", got)
	}
}

func assertSameJSON(t *testing.T, got, want []byte) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("unmarshal %s: %v", got, err)
	}
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("unmarshal %s: %v", want, err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("got %s, want %s", got, want)
	}
}
