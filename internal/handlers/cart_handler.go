package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/delicioso/admin-gateway/internal/cart"
	"github.com/delicioso/admin-gateway/internal/catalog"
	"github.com/delicioso/admin-gateway/internal/models"
	"github.com/delicioso/admin-gateway/internal/service"
	"github.com/delicioso/admin-gateway/internal/session"
	"github.com/go-chi/chi/v5"
)

// CartHandler exposes the session cart as JSON. Every mutation responds with
// the full projected cart view, the HTTP equivalent of re-rendering the cart
// list and total after each change.
type CartHandler struct {
	catalog *catalog.Cache
	orders  *service.OrderService
	log     *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalog *catalog.Cache, orders *service.OrderService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		orders:  orders,
		log:     log,
	}
}

// AddItemRequest selects a product either by its position in the catalog
// snapshot (the dropdown index) or by product ID.
type AddItemRequest struct {
	Indice *int   `json:"indice,omitempty"`
	ID     *int64 `json:"id,omitempty"`
	Qtd    int    `json:"qtd"`
}

// GetCart handles GET /api/carrinho
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Session not found", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, h.view(sess), h.log)
}

// AddItem handles POST /api/carrinho/itens
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Session not found", h.log)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("invalid add item body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	product, err := h.resolve(req)
	if err != nil {
		h.log.Warn("product selection not resolved", "error", err)
		WriteError(w, http.StatusBadRequest, "Select a product and a valid quantity", h.log)
		return
	}

	sess.Lock()
	err = sess.Cart.Add(*product, req.Qtd)
	sess.Unlock()
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Select a product and a valid quantity", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, h.view(sess), h.log)
}

// UpdateItem handles PUT /api/carrinho/itens/{idx}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Session not found", h.log)
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid line index", h.log)
		return
	}

	var req struct {
		Qtd int `json:"qtd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	sess.Lock()
	err = sess.Cart.SetQuantity(idx, req.Qtd)
	sess.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrLineNotFound):
			WriteError(w, http.StatusNotFound, "Cart line not found", h.log)
		case errors.Is(err, cart.ErrInvalidQuantity):
			WriteError(w, http.StatusBadRequest, "Invalid quantity", h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, h.view(sess), h.log)
}

// RemoveItem handles DELETE /api/carrinho/itens/{idx}
// Removal is destructive and requires confirm=true; the first request
// without it answers 409 so the caller can ask the operator.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Session not found", h.log)
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid line index", h.log)
		return
	}

	if !confirmed(r) {
		WriteError(w, http.StatusConflict, "Confirmation required to remove this item", h.log)
		return
	}

	sess.Lock()
	err = sess.Cart.Remove(idx)
	sess.Unlock()
	if err != nil {
		WriteError(w, http.StatusNotFound, "Cart line not found", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, h.view(sess), h.log)
}

// ClearCart handles DELETE /api/carrinho
// Clearing a non-empty cart requires confirm=true; an already empty cart is
// a no-op and needs no confirmation.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Session not found", h.log)
		return
	}

	sess.Lock()
	empty := sess.Cart.Len() == 0
	sess.Unlock()

	if !empty {
		if !confirmed(r) {
			WriteError(w, http.StatusConflict, "Confirmation required to clear the cart", h.log)
			return
		}
		sess.Lock()
		sess.Cart.Clear()
		sess.Unlock()
	}

	WriteJSON(w, http.StatusOK, h.view(sess), h.log)
}

// UpdateCustomer handles PUT /api/carrinho/cliente
// Changing the frete field recomputes the displayed total, which is why the
// response is the full cart view.
func (h *CartHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Session not found", h.log)
		return
	}

	var cliente models.Customer
	if err := json.NewDecoder(r.Body).Decode(&cliente); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if cliente.Pagamento == "" {
		cliente.Pagamento = models.DefaultPaymentMethod
	}

	sess.Lock()
	sess.Customer = cliente
	sess.Unlock()

	WriteJSON(w, http.StatusOK, h.view(sess), h.log)
}

// Finalize handles POST /api/carrinho/finalizar
func (h *CartHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Session not found", h.log)
		return
	}

	resp, err := h.orders.Submit(r.Context(), sess)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "The cart is empty", h.log)
		case errors.Is(err, service.ErrMissingCustomerName):
			WriteError(w, http.StatusBadRequest, "Customer name is required", h.log)
		case errors.Is(err, service.ErrSubmissionInFlight):
			WriteError(w, http.StatusConflict, "An order submission is already in progress", h.log)
		default:
			WriteError(w, http.StatusBadGateway, "Failed to submit the order, please try again", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, resp, h.log)
}

func (h *CartHandler) resolve(req AddItemRequest) (*models.Product, error) {
	switch {
	case req.Indice != nil:
		return h.catalog.ResolveByIndex(*req.Indice)
	case req.ID != nil:
		return h.catalog.ResolveByID(*req.ID)
	default:
		return nil, catalog.ErrUnknownProduct
	}
}

func (h *CartHandler) view(sess *session.Session) models.CartView {
	sess.Lock()
	defer sess.Unlock()

	lines := sess.Cart.Lines()
	frete := cart.ParseFrete(sess.Customer.Frete)

	return models.CartView{
		Itens:    lines,
		Subtotal: cart.Total(lines, 0),
		Frete:    frete,
		Total:    cart.Total(lines, frete),
		Cliente:  sess.Customer,
	}
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
