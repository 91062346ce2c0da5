package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/delicioso/admin-gateway/internal/models"
)

// ReportBackend is the slice of the backend API the read-only screens use.
type ReportBackend interface {
	GetDashboard(ctx context.Context, dataInicio, dataFim string) (*models.Dashboard, error)
	ListOrders(ctx context.Context, dataInicio, dataFim string) ([]models.OrderRecord, error)
}

// ReportHandler serves the dashboard metrics and the order history. Both are
// uncached proxies: after an order is created the next request simply
// re-fetches fresh data.
type ReportHandler struct {
	backend ReportBackend
	log     *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(backend ReportBackend, log *slog.Logger) *ReportHandler {
	return &ReportHandler{
		backend: backend,
		log:     log,
	}
}

// GetDashboard handles GET /api/dashboard?data_inicio=&data_fim=
func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dash, err := h.backend.GetDashboard(r.Context(), q.Get("data_inicio"), q.Get("data_fim"))
	if err != nil {
		h.log.Error("failed to load dashboard", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to load the dashboard", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, dash, h.log)
}

// ListOrders handles GET /api/pedidos?data_inicio=&data_fim=
func (h *ReportHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	orders, err := h.backend.ListOrders(r.Context(), q.Get("data_inicio"), q.Get("data_fim"))
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to load the order history", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}
