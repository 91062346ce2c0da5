package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delicioso/admin-gateway/internal/models"
	"github.com/delicioso/admin-gateway/pkg/logger"
)

type fakeReportBackend struct {
	dash     *models.Dashboard
	orders   []models.OrderRecord
	err      error
	gotRange [2]string
}

func (f *fakeReportBackend) GetDashboard(ctx context.Context, dataInicio, dataFim string) (*models.Dashboard, error) {
	f.gotRange = [2]string{dataInicio, dataFim}
	return f.dash, f.err
}

func (f *fakeReportBackend) ListOrders(ctx context.Context, dataInicio, dataFim string) ([]models.OrderRecord, error) {
	f.gotRange = [2]string{dataInicio, dataFim}
	return f.orders, f.err
}

func TestReportHandler_GetDashboard(t *testing.T) {
	fake := &fakeReportBackend{
		dash: &models.Dashboard{
			FaturamentoTotal: 1250.5,
			Pagamentos:       map[string]float64{"Pix": 800, "Dinheiro": 450.5},
			Devedores:        []models.Debtor{{IDPedido: 7, Nome: "Maria", Valor: 23}},
		},
	}
	handler := NewReportHandler(fake, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?data_inicio=2026-08-01&data_fim=2026-08-28", nil)
	w := httptest.NewRecorder()
	handler.GetDashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if fake.gotRange != [2]string{"2026-08-01", "2026-08-28"} {
		t.Errorf("date range = %v", fake.gotRange)
	}

	var got models.Dashboard
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.FaturamentoTotal != 1250.5 || len(got.Devedores) != 1 {
		t.Errorf("unexpected dashboard: %+v", got)
	}
}

func TestReportHandler_ListOrders(t *testing.T) {
	fake := &fakeReportBackend{
		orders: []models.OrderRecord{
			{ID: 1, Cliente: "Maria", Descricao: "1x Bolo", Pagamento: "Pix", Total: 23},
		},
	}
	handler := NewReportHandler(fake, logger.New("error"))

	// No date filter: empty range is passed through
	req := httptest.NewRequest(http.MethodGet, "/api/pedidos", nil)
	w := httptest.NewRecorder()
	handler.ListOrders(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if fake.gotRange != [2]string{"", ""} {
		t.Errorf("date range = %v, want empty", fake.gotRange)
	}

	var got []models.OrderRecord
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Cliente != "Maria" {
		t.Errorf("unexpected orders: %+v", got)
	}
}

func TestReportHandler_BackendDown(t *testing.T) {
	fake := &fakeReportBackend{err: errors.New("connection refused")}
	handler := NewReportHandler(fake, logger.New("error"))

	w := httptest.NewRecorder()
	handler.GetDashboard(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("dashboard status = %d, want %d", w.Code, http.StatusBadGateway)
	}

	w = httptest.NewRecorder()
	handler.ListOrders(w, httptest.NewRequest(http.MethodGet, "/api/pedidos", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("orders status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}
