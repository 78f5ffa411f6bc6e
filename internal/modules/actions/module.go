package actions

import (
	"trade_desk/internal/confirm"
	"trade_desk/internal/models"
	"trade_desk/internal/modules/actions/service"
	backendsvc "trade_desk/internal/modules/backend/service"
	healthsvc "trade_desk/internal/modules/health/service"
	tablesvc "trade_desk/internal/modules/table/service"
	"trade_desk/internal/notify"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type dispatcherParams struct {
	fx.In

	Backend  *backendsvc.Client
	Store    *tablesvc.InstanceStore
	Expand   *tablesvc.ExpandTracker
	Broker   *confirm.Broker
	Notifier notify.Notifier
	Flow     *service.PositionFlow
	State    *healthsvc.State
	Log      *zap.Logger
}

func NewDispatcher(p dispatcherParams) *service.Dispatcher {
	log := p.Log.Named("actions")
	d := service.NewDispatcher(service.Deps{
		Backend:  p.Backend,
		Store:    p.Store,
		Expand:   p.Expand,
		Broker:   p.Broker,
		Prompter: p.Notifier,
		Notifier: p.Notifier,
		Flow:     p.Flow,
		Log:      log,
	})
	d.OnReplace(func(items []models.Instance) {
		p.State.SetInstances(len(items))
		p.State.SetReady(true)
	})
	return d
}

func Module() fx.Option {
	return fx.Module("actions",
		fx.Provide(
			func(log *zap.Logger) *service.PositionFlow {
				l := log.Named("position_flow")
				return service.NewPositionFlow(func(id string) {
					l.Info("add position requested", zap.String("instance_id", id))
				})
			},
			NewDispatcher,
		),
	)
}
