package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/delicioso/admin-gateway/internal/catalog"
	"github.com/delicioso/admin-gateway/internal/models"
)

// ProductWriter creates products on the backend.
type ProductWriter interface {
	CreateProduct(ctx context.Context, p models.NewProduct) (*models.Message, error)
}

// CatalogHandler serves the product screen: listing goes through the catalog
// cache (refreshing it, since listing is how the screen is entered), creation
// passes through to the backend and invalidates the snapshot.
type CatalogHandler struct {
	catalog *catalog.Cache
	backend ProductWriter
	log     *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cache *catalog.Cache, backend ProductWriter, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cache,
		backend: backend,
		log:     log,
	}
}

// ListProducts handles GET /api/produtos
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Refresh(r.Context())
	if err != nil {
		h.log.Error("failed to refresh product catalog", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to load products", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.log)
}

// CreateProduct handles POST /api/produtos
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.NewProduct
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if req.Nome == "" || req.Preco <= 0 {
		WriteError(w, http.StatusBadRequest, "Product name and a positive price are required", h.log)
		return
	}

	msg, err := h.backend.CreateProduct(r.Context(), req)
	if err != nil {
		h.log.Error("failed to create product", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to save the product", h.log)
		return
	}

	// The snapshot no longer reflects the catalog
	h.catalog.Invalidate()

	WriteJSON(w, http.StatusOK, msg, h.log)
}
