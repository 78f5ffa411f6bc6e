package api

import (
	"errors"
	"net/http"
	"strconv"
	actionsvc "trade_desk/internal/modules/actions/service"
	colsvc "trade_desk/internal/modules/columns/service"
	tablesvc "trade_desk/internal/modules/table/service"
	"trade_desk/internal/render"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Handlers expose the table view model and its row actions over HTTP.
type Handlers struct {
	view       *tablesvc.View
	dispatcher *actionsvc.Dispatcher
	log        *zap.Logger
}

func NewHandlers(view *tablesvc.View, d *actionsvc.Dispatcher, log *zap.Logger) *Handlers {
	return &Handlers{view: view, dispatcher: d, log: log}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /table", h.table)
	mux.HandleFunc("POST /table/refresh", h.refresh)
	mux.HandleFunc("POST /table/rows/{id}/expand", h.toggleExpanded)
	mux.HandleFunc("GET /columns/{set}", h.columns)
	mux.HandleFunc("POST /columns/{set}/{id}/toggle", h.toggleColumn)
	mux.HandleFunc("POST /columns/{set}/reset", h.resetColumns)
	mux.HandleFunc("DELETE /instances/{id}", h.deleteInstance)
	mux.HandleFunc("POST /instances/{id}/positions", h.addPosition)
}

// table answers markdown when asked for text/markdown, JSON otherwise.
func (h *Handlers) table(w http.ResponseWriter, r *http.Request) {
	snap := h.view.Snapshot()
	if r.Header.Get("Accept") == "text/markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(render.Markdown(snap)))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// refresh reloads the instances from the backend and answers with the new snapshot.
func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.dispatcher.Refresh(r.Context()); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, actionsvc.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.view.Snapshot())
}

func (h *Handlers) toggleExpanded(w http.ResponseWriter, r *http.Request) {
	expanded := h.view.ToggleExpanded(r.PathValue("id"))
	writeJSON(w, http.StatusOK, map[string]bool{"expanded": expanded})
}

func (h *Handlers) columnSet(w http.ResponseWriter, r *http.Request) *colsvc.ColumnSet {
	switch r.PathValue("set") {
	case "instance":
		return h.view.Columns.Instance
	case "detail":
		return h.view.Columns.TradeDetail
	default:
		http.Error(w, "unknown column set", http.StatusNotFound)
		return nil
	}
}

func (h *Handlers) columns(w http.ResponseWriter, r *http.Request) {
	if set := h.columnSet(w, r); set != nil {
		writeJSON(w, http.StatusOK, set.Columns())
	}
}

func (h *Handlers) toggleColumn(w http.ResponseWriter, r *http.Request) {
	if set := h.columnSet(w, r); set != nil {
		writeJSON(w, http.StatusOK, set.Toggle(r.Context(), r.PathValue("id")))
	}
}

func (h *Handlers) resetColumns(w http.ResponseWriter, r *http.Request) {
	if set := h.columnSet(w, r); set != nil {
		writeJSON(w, http.StatusOK, set.Reset(r.Context()))
	}
}

// deleteInstance blocks until the confirmation is answered or times out.
func (h *Handlers) deleteInstance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state, err := h.dispatcher.DeleteInstance(r.Context(), id)

	resp := map[string]string{"state": state.String()}
	status := http.StatusOK
	switch state {
	case actionsvc.StateSettled:
	case actionsvc.StateCancelled:
		if err != nil {
			status = http.StatusServiceUnavailable
			resp["error"] = err.Error()
		}
	default:
		status = http.StatusBadGateway
		if err != nil {
			resp["error"] = err.Error()
		}
	}
	h.log.Debug("delete request", zap.String("instance_id", id), zap.Stringer("state", state), zap.Int("status", status))
	writeJSON(w, status, resp)
}

func (h *Handlers) addPosition(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.dispatcher.AddPosition(id)
	writeJSON(w, http.StatusAccepted, map[string]string{"instanceId": id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
