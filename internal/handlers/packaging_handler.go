package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/delicioso/admin-gateway/internal/models"
)

// PackagingBackend is the slice of the backend API the packaging screen uses.
type PackagingBackend interface {
	ListPackagings(ctx context.Context) ([]models.Packaging, error)
	CreatePackaging(ctx context.Context, p models.NewPackaging) (*models.Message, error)
	SetPackagingStock(ctx context.Context, u models.StockUpdate) (*models.Message, error)
}

// PackagingHandler serves the packaging inventory screen as a thin
// pass-through to the backend.
type PackagingHandler struct {
	backend PackagingBackend
	log     *slog.Logger
}

// NewPackagingHandler creates a new packaging handler
func NewPackagingHandler(backend PackagingBackend, log *slog.Logger) *PackagingHandler {
	return &PackagingHandler{
		backend: backend,
		log:     log,
	}
}

// ListPackagings handles GET /api/embalagens
func (h *PackagingHandler) ListPackagings(w http.ResponseWriter, r *http.Request) {
	packagings, err := h.backend.ListPackagings(r.Context())
	if err != nil {
		h.log.Error("failed to list packagings", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to load packagings", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, packagings, h.log)
}

// CreatePackaging handles POST /api/embalagens
func (h *PackagingHandler) CreatePackaging(w http.ResponseWriter, r *http.Request) {
	var req models.NewPackaging
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if req.Nome == "" || req.Quantidade <= 0 {
		WriteError(w, http.StatusBadRequest, "Packaging name and a positive quantity are required", h.log)
		return
	}

	msg, err := h.backend.CreatePackaging(r.Context(), req)
	if err != nil {
		h.log.Error("failed to create packaging", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to save the packaging", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, msg, h.log)
}

// UpdateStock handles POST /api/embalagens/editar
// The backend treats the quantity as an absolute correction, not a delta.
func (h *PackagingHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req models.StockUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if req.ID <= 0 || req.Quantidade < 0 {
		WriteError(w, http.StatusBadRequest, "A valid packaging ID and a non-negative quantity are required", h.log)
		return
	}

	msg, err := h.backend.SetPackagingStock(r.Context(), req)
	if err != nil {
		h.log.Error("failed to update packaging stock", "id", req.ID, "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to update the stock", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, msg, h.log)
}
