package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"trade_desk/internal/models"
	"trade_desk/internal/modules/columns/service"
	"trade_desk/internal/modules/columns/service/memory"
)

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage down")
}
func (failingStorage) Set(context.Context, string, []byte) error { return errors.New("storage down") }

func TestLoadFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"null", `null`},
		{"empty list", `[]`},
		{"not json", `{{{`},
		{"wrong shape", `{"id":"indexName"}`},
		{"duplicate ids", `[{"id":"a","label":"A","width":50,"visible":true},{"id":"a","label":"A","width":50,"visible":true}]`},
		{"blank id", `[{"id":"","label":"A","width":50,"visible":true}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := memory.NewStorage()
			if err := mem.Set(ctx, service.InstanceColumnsKey, []byte(tt.stored)); err != nil {
				t.Fatal(err)
			}
			got := service.NewStore(mem, nil).Load(ctx, service.InstanceColumnsKey, service.DefaultInstanceColumns())
			if !reflect.DeepEqual(got, service.DefaultInstanceColumns()) {
				t.Errorf("Load = %+v, want defaults", got)
			}
		})
	}
}

func TestLoadMissingAndFailingStorage(t *testing.T) {
	ctx := context.Background()
	defaults := service.DefaultTradeDetailColumns()

	got := service.NewStore(memory.NewStorage(), nil).Load(ctx, service.TradeDetailColumnsKey, defaults)
	if !reflect.DeepEqual(got, defaults) {
		t.Errorf("missing key: got %+v", got)
	}
	got[0].Visible = false
	if !defaults[0].Visible {
		t.Error("Load returned the defaults slice itself")
	}

	got = service.NewStore(failingStorage{}, nil).Load(ctx, service.TradeDetailColumnsKey, defaults)
	if !reflect.DeepEqual(got, defaults) {
		t.Errorf("failing storage: got %+v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := service.NewStore(memory.NewStorage(), nil)

	list := []models.ColumnDescriptor{
		{ID: "x", Label: "X", Width: 60, Visible: false},
		{ID: "y", Label: "Y", Width: 300, Visible: true},
	}
	if err := store.Save(ctx, "k", list); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := store.Load(ctx, "k", service.DefaultInstanceColumns())
	if !reflect.DeepEqual(got, list) {
		t.Errorf("Load = %+v, want %+v", got, list)
	}
}

func TestSaveError(t *testing.T) {
	err := service.NewStore(failingStorage{}, nil).Save(context.Background(), "k", service.DefaultInstanceColumns())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestColumnSetsAreIndependent(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewStorage()
	cols := service.NewColumns(ctx, service.NewStore(mem, nil))

	cols.Instance.Toggle(ctx, service.ColExpiry)
	cols.TradeDetail.Resize(ctx, service.ColQty, 200)

	if got := cols.TradeDetail.Columns(); got[0].Width != 200 || !got[0].Visible {
		t.Errorf("trade detail columns = %+v", got)
	}
	for _, c := range cols.TradeDetail.Columns() {
		if !c.Visible {
			t.Errorf("instance toggle leaked into detail set: %+v", c)
		}
	}

	// a second session sees the persisted state
	reopened := service.NewColumns(ctx, service.NewStore(mem, nil))
	if !reflect.DeepEqual(reopened.Instance.Columns(), cols.Instance.Columns()) {
		t.Errorf("instance set not persisted: %+v", reopened.Instance.Columns())
	}
	if !reflect.DeepEqual(reopened.TradeDetail.Columns(), cols.TradeDetail.Columns()) {
		t.Errorf("detail set not persisted: %+v", reopened.TradeDetail.Columns())
	}
	if n := len(reopened.Instance.Visible()); n != 4 {
		t.Errorf("visible instance columns = %d, want 4", n)
	}
}

func TestCorruptSetDoesNotAffectTheOther(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewStorage()
	store := service.NewStore(mem, nil)

	saved := service.Resize(service.ToggleVisibility(service.DefaultTradeDetailColumns(), service.ColEntryType), service.ColQty, 180)
	if err := store.Save(ctx, service.TradeDetailColumnsKey, saved); err != nil {
		t.Fatal(err)
	}
	if err := mem.Set(ctx, service.InstanceColumnsKey, []byte(`[{"id":"indexName",`)); err != nil {
		t.Fatal(err)
	}

	cols := service.NewColumns(ctx, store)

	if got := cols.Instance.Columns(); !reflect.DeepEqual(got, service.DefaultInstanceColumns()) {
		t.Errorf("instance columns = %+v, want defaults", got)
	}
	if got := cols.TradeDetail.Columns(); !reflect.DeepEqual(got, saved) {
		t.Errorf("trade detail columns = %+v, want %+v", got, saved)
	}
}

func TestColumnSetKeepsChangesWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	set := service.OpenColumnSet(ctx, service.NewStore(failingStorage{}, nil), service.InstanceColumnsKey, service.DefaultInstanceColumns())

	got := set.Move(ctx, service.ColLowestValue, 0)
	if got[0].ID != service.ColLowestValue {
		t.Fatalf("Move = %+v", got)
	}
	if set.Columns()[0].ID != service.ColLowestValue {
		t.Error("in-memory list lost after failed save")
	}

	set.Reset(ctx)
	if !reflect.DeepEqual(set.Columns(), service.DefaultInstanceColumns()) {
		t.Errorf("Reset = %+v", set.Columns())
	}
}
