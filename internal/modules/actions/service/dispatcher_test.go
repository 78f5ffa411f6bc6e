package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"trade_desk/internal/confirm"
	"trade_desk/internal/models"
	tablesvc "trade_desk/internal/modules/table/service"
)

type fakeBackend struct {
	mu        sync.Mutex
	deleteErr error
	listErr   error
	list      []models.Instance
	deleted   []string
	lists     int

	// runs inside DeleteInstance, before it returns
	onDelete func()
}

func (f *fakeBackend) ListInstances(context.Context) ([]models.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return models.CloneInstances(f.list), nil
}

func (f *fakeBackend) DeleteInstance(_ context.Context, id string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	err := f.deleteErr
	cb := f.onDelete
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
	return err
}

type fakeUI struct {
	mu        sync.Mutex
	accept    bool
	promptErr error
	prompts   []string
	successes []string
	failures  []string
}

func (f *fakeUI) Prompt(_ context.Context, p *confirm.Pending) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p.Prompt)
	if f.promptErr != nil {
		return f.promptErr
	}
	if f.accept {
		p.Confirm()
	} else {
		p.Decline()
	}
	return nil
}

func (f *fakeUI) Success(msg string) {
	f.mu.Lock()
	f.successes = append(f.successes, msg)
	f.mu.Unlock()
}

func (f *fakeUI) Failure(msg string) {
	f.mu.Lock()
	f.failures = append(f.failures, msg)
	f.mu.Unlock()
}

type fixture struct {
	d       *Dispatcher
	backend *fakeBackend
	ui      *fakeUI
	store   *tablesvc.InstanceStore
	expand  *tablesvc.ExpandTracker
	flow    *PositionFlow
}

var initial = []models.Instance{
	{ID: "a", IndexName: models.IndexNifty, TradeDetails: []models.TradeDetail{{ID: "a-1", InstanceID: "a"}}},
	{ID: "b", IndexName: models.IndexSensex},
}

func newFixture(accept bool) *fixture {
	f := &fixture{
		backend: &fakeBackend{list: []models.Instance{{ID: "b", IndexName: models.IndexSensex}}},
		ui:      &fakeUI{accept: accept},
		store:   tablesvc.NewInstanceStore(),
		expand:  tablesvc.NewExpandTracker(),
		flow:    NewPositionFlow(nil),
	}
	f.store.Replace(initial)
	f.d = NewDispatcher(Deps{
		Backend:  f.backend,
		Store:    f.store,
		Expand:   f.expand,
		Broker:   confirm.NewBroker(0),
		Prompter: f.ui,
		Notifier: f.ui,
		Flow:     f.flow,
	})
	return f
}

func TestDeleteSettled(t *testing.T) {
	f := newFixture(true)
	f.expand.Toggle("a")
	f.expand.Toggle("b")
	var replaced []models.Instance
	f.d.OnReplace(func(items []models.Instance) { replaced = items })

	state, err := f.d.DeleteInstance(context.Background(), "a")
	if err != nil || state != StateSettled {
		t.Fatalf("DeleteInstance = %s, %v", state, err)
	}

	if !reflect.DeepEqual(f.ui.prompts, []string{MsgConfirmDelete}) {
		t.Errorf("prompts = %v", f.ui.prompts)
	}
	if !reflect.DeepEqual(f.backend.deleted, []string{"a"}) {
		t.Errorf("deleted = %v", f.backend.deleted)
	}
	if f.backend.lists != 1 {
		t.Errorf("refetches = %d, want 1", f.backend.lists)
	}
	if !reflect.DeepEqual(f.store.Snapshot(), f.backend.list) {
		t.Errorf("store = %+v, want refetch result", f.store.Snapshot())
	}
	if f.expand.IsExpanded("a") || !f.expand.IsExpanded("b") {
		t.Error("expand state not pruned to the live rows")
	}
	if !reflect.DeepEqual(f.ui.successes, []string{MsgDeleted}) || len(f.ui.failures) != 0 {
		t.Errorf("notifications: ok=%v fail=%v", f.ui.successes, f.ui.failures)
	}
	if len(replaced) != 1 {
		t.Errorf("OnReplace got %d items", len(replaced))
	}
}

func TestDeleteDeclined(t *testing.T) {
	f := newFixture(false)

	state, err := f.d.DeleteInstance(context.Background(), "a")
	if err != nil || state != StateCancelled {
		t.Fatalf("DeleteInstance = %s, %v", state, err)
	}
	if len(f.backend.deleted) != 0 || f.backend.lists != 0 {
		t.Errorf("backend called: deleted=%v lists=%d", f.backend.deleted, f.backend.lists)
	}
	if !reflect.DeepEqual(f.store.Snapshot(), initial) {
		t.Error("store changed")
	}
	if len(f.ui.successes)+len(f.ui.failures) != 0 {
		t.Error("notification sent for a cancelled delete")
	}
}

func TestDeletePromptError(t *testing.T) {
	f := newFixture(true)
	f.ui.promptErr = errors.New("chat unreachable")

	state, err := f.d.DeleteInstance(context.Background(), "a")
	if state != StateCancelled || err == nil {
		t.Fatalf("DeleteInstance = %s, %v", state, err)
	}
	if len(f.backend.deleted) != 0 {
		t.Error("deleted without confirmation")
	}
}

func TestDeleteFails(t *testing.T) {
	f := newFixture(true)
	f.backend.deleteErr = errors.New("boom")

	state, err := f.d.DeleteInstance(context.Background(), "a")
	if state != StateFailed || err == nil {
		t.Fatalf("DeleteInstance = %s, %v", state, err)
	}
	if f.backend.lists != 0 {
		t.Errorf("refetches = %d, want 0", f.backend.lists)
	}
	if !reflect.DeepEqual(f.store.Snapshot(), initial) {
		t.Error("store changed after a failed delete")
	}
	if !reflect.DeepEqual(f.ui.failures, []string{MsgDeleteFailed}) || len(f.ui.successes) != 0 {
		t.Errorf("notifications: ok=%v fail=%v", f.ui.successes, f.ui.failures)
	}
}

func TestDeleteRefetchFails(t *testing.T) {
	f := newFixture(true)
	f.backend.listErr = errors.New("timeout")

	state, err := f.d.DeleteInstance(context.Background(), "a")
	if state != StateFailed || err == nil {
		t.Fatalf("DeleteInstance = %s, %v", state, err)
	}
	if f.backend.lists != 1 {
		t.Errorf("refetches = %d, want 1", f.backend.lists)
	}
	if !reflect.DeepEqual(f.store.Snapshot(), initial) {
		t.Error("store changed after a failed refetch")
	}
	if !reflect.DeepEqual(f.ui.failures, []string{MsgDeleteFailed}) {
		t.Errorf("failures = %v", f.ui.failures)
	}
}

func TestDeleteAfterCloseIsIgnored(t *testing.T) {
	f := newFixture(true)
	f.backend.onDelete = f.d.Close

	state, err := f.d.DeleteInstance(context.Background(), "a")
	if err != nil || state != StateCancelled {
		t.Fatalf("DeleteInstance = %s, %v", state, err)
	}
	if f.backend.lists != 0 {
		t.Errorf("refetched after close")
	}
	if !reflect.DeepEqual(f.store.Snapshot(), initial) {
		t.Error("store written after close")
	}
	if len(f.ui.successes)+len(f.ui.failures) != 0 {
		t.Error("notification after close")
	}

	if _, err := f.d.DeleteInstance(context.Background(), "b"); !errors.Is(err, ErrClosed) {
		t.Errorf("delete on closed dispatcher: err = %v", err)
	}
}

func TestRefresh(t *testing.T) {
	f := newFixture(true)
	if err := f.d.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(f.store.Snapshot(), f.backend.list) {
		t.Errorf("store = %+v", f.store.Snapshot())
	}

	f.backend.listErr = errors.New("down")
	if err := f.d.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(f.store.Snapshot(), f.backend.list) {
		t.Error("store changed by a failed refresh")
	}
	if !reflect.DeepEqual(f.ui.failures, []string{MsgLoadFailed}) {
		t.Errorf("failures = %v", f.ui.failures)
	}
}

func TestReloadIsSilent(t *testing.T) {
	f := newFixture(true)
	f.backend.listErr = errors.New("down")

	if err := f.d.Reload(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(f.ui.failures) != 0 {
		t.Errorf("failures = %v, want none", f.ui.failures)
	}

	f.d.ReportLoadFailure(f.backend.listErr)
	if !reflect.DeepEqual(f.ui.failures, []string{MsgLoadFailed}) {
		t.Errorf("failures = %v", f.ui.failures)
	}
}

func TestAddPosition(t *testing.T) {
	f := newFixture(true)
	f.d.AddPosition("b")

	if !f.flow.IsOpen() || f.flow.Target() != "b" {
		t.Errorf("flow open=%t target=%q", f.flow.IsOpen(), f.flow.Target())
	}
	if len(f.backend.deleted) != 0 || f.backend.lists != 0 {
		t.Error("add position called the backend")
	}
	f.flow.Close()
	if f.flow.IsOpen() {
		t.Error("flow still open after Close")
	}
}

func TestDeleteStateString(t *testing.T) {
	if StateRefetching.String() != "refetching" || DeleteState(42).String() != "unknown" {
		t.Errorf("String: %s %s", StateRefetching, DeleteState(42))
	}
	for _, s := range []DeleteState{StateCancelled, StateFailed, StateSettled} {
		if !s.Terminal() {
			t.Errorf("%s not terminal", s)
		}
	}
	if StateRequesting.Terminal() {
		t.Error("requesting is terminal")
	}
}
