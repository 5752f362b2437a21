package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"presales/internal/transport/httputil"
)

// Handler exposes the audit trail to administrators.
type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Mount registers audit routes. The caller is responsible for wrapping them
// in auth and admin middleware.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	events, err := h.store.List(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "listing audit events failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{"content": events})
}
