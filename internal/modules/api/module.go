package api

import (
	"net/http"
	actionsvc "trade_desk/internal/modules/actions/service"
	tablesvc "trade_desk/internal/modules/table/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module mounts the table API on the health server's mux.
func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(
			func(v *tablesvc.View, d *actionsvc.Dispatcher, log *zap.Logger) *Handlers {
				return NewHandlers(v, d, log.Named("api"))
			},
		),
		fx.Invoke(func(mux *http.ServeMux, h *Handlers) {
			h.Register(mux)
		}),
	)
}
