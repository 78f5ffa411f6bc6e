package service

import (
	"context"
	"errors"
	"sync/atomic"
	"trade_desk/internal/confirm"
	"trade_desk/internal/models"
	tablesvc "trade_desk/internal/modules/table/service"

	"go.uber.org/zap"
)

const (
	MsgConfirmDelete = "Are you sure you want to delete this instance?"
	MsgDeleteFailed  = "Failed to delete instance"
	MsgDeleted       = "Instance deleted successfully"
	MsgLoadFailed    = "Failed to load instances"
)

var ErrClosed = errors.New("dispatcher closed")

// Backend is the subset of the trading backend the row actions need.
type Backend interface {
	ListInstances(ctx context.Context) ([]models.Instance, error)
	DeleteInstance(ctx context.Context, id string) error
}

// Notifier shows the outcome of an action.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Prompter presents a confirmation question; the answer settles p.
type Prompter interface {
	Prompt(ctx context.Context, p *confirm.Pending) error
}

// Dispatcher runs the per-row actions of the instances table.
type Dispatcher struct {
	backend  Backend
	store    *tablesvc.InstanceStore
	expand   *tablesvc.ExpandTracker
	broker   *confirm.Broker
	prompter Prompter
	notifier Notifier
	flow     CreationFlow
	log      *zap.Logger

	onReplace func(items []models.Instance)
	closed    atomic.Bool
}

type Deps struct {
	Backend  Backend
	Store    *tablesvc.InstanceStore
	Expand   *tablesvc.ExpandTracker
	Broker   *confirm.Broker
	Prompter Prompter
	Notifier Notifier
	Flow     CreationFlow
	Log      *zap.Logger
}

func NewDispatcher(d Deps) *Dispatcher {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	broker := d.Broker
	if broker == nil {
		broker = confirm.NewBroker(0)
	}
	return &Dispatcher{
		backend:  d.Backend,
		store:    d.Store,
		expand:   d.Expand,
		broker:   broker,
		prompter: d.Prompter,
		notifier: d.Notifier,
		flow:     d.Flow,
		log:      log,
	}
}

// OnReplace registers fn to run after every wholesale replacement of the instance store.
func (d *Dispatcher) OnReplace(fn func(items []models.Instance)) {
	d.onReplace = fn
}

// Close makes the dispatcher ignore completions of requests still in flight.
func (d *Dispatcher) Close() { d.closed.Store(true) }

// Refresh loads the instance list and replaces the store with it.
// A failed load is reported to the user; the store keeps its previous content.
func (d *Dispatcher) Refresh(ctx context.Context) error {
	err := d.Reload(ctx)
	if err != nil && !errors.Is(err, ErrClosed) {
		d.ReportLoadFailure(err)
	}
	return err
}

// Reload is Refresh without the failure notification, for callers that retry.
func (d *Dispatcher) Reload(ctx context.Context) error {
	if d.closed.Load() {
		return ErrClosed
	}
	items, err := d.backend.ListInstances(ctx)
	if d.closed.Load() {
		return ErrClosed
	}
	if err != nil {
		return err
	}
	d.replace(items)
	return nil
}

// ReportLoadFailure logs err and shows the load failure message.
func (d *Dispatcher) ReportLoadFailure(err error) {
	if d.closed.Load() {
		return
	}
	d.log.Error("load instances", zap.Error(err))
	d.notifier.Failure(MsgLoadFailed)
}

// DeleteInstance asks for confirmation, deletes id on the backend and reloads the whole list.
// The store is only touched by the reload; a failed delete leaves it as it was.
func (d *Dispatcher) DeleteInstance(ctx context.Context, id string) (DeleteState, error) {
	log := d.log.With(zap.String("instance_id", id))
	if d.closed.Load() {
		return StateIdle, ErrClosed
	}

	p := d.broker.Request(MsgConfirmDelete)
	log.Debug("awaiting confirmation", zap.Stringer("state", StateAwaitingConfirmation), zap.String("prompt_id", p.ID))
	if err := d.prompter.Prompt(ctx, p); err != nil {
		p.Decline()
		log.Warn("confirmation prompt failed", zap.Error(err))
		return StateCancelled, err
	}
	if !d.broker.Wait(ctx, p) {
		log.Info("delete cancelled", zap.Stringer("state", StateCancelled))
		return StateCancelled, nil
	}

	log.Debug("deleting instance", zap.Stringer("state", StateRequesting))
	if err := d.backend.DeleteInstance(ctx, id); err != nil {
		if d.closed.Load() {
			return StateCancelled, nil
		}
		log.Error("delete instance", zap.Stringer("state", StateFailed), zap.Error(err))
		d.notifier.Failure(MsgDeleteFailed)
		return StateFailed, err
	}
	if d.closed.Load() {
		return StateCancelled, nil
	}

	log.Debug("reloading instances", zap.Stringer("state", StateRefetching))
	items, err := d.backend.ListInstances(ctx)
	if d.closed.Load() {
		return StateCancelled, nil
	}
	if err != nil {
		log.Error("reload instances", zap.Stringer("state", StateFailed), zap.Error(err))
		d.notifier.Failure(MsgDeleteFailed)
		return StateFailed, err
	}

	d.replace(items)
	d.notifier.Success(MsgDeleted)
	log.Info("instance deleted", zap.Stringer("state", StateSettled), zap.Int("instances", len(items)))
	return StateSettled, nil
}

// AddPosition opens the creation flow for id. Nothing is sent to the backend.
func (d *Dispatcher) AddPosition(id string) {
	if d.closed.Load() || d.flow == nil {
		return
	}
	d.log.Debug("open add position", zap.String("instance_id", id))
	d.flow.Open(id)
}

func (d *Dispatcher) replace(items []models.Instance) {
	d.store.Replace(items)
	if d.expand != nil {
		d.expand.Prune(d.store.IDs())
	}
	if d.onReplace != nil {
		d.onReplace(items)
	}
}
