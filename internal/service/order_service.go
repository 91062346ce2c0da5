package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/delicioso/admin-gateway/internal/models"
	"github.com/delicioso/admin-gateway/internal/session"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrSubmissionInFlight  = errors.New("an order submission is already in progress")
)

// OrderCreator submits a finalized order to the backend.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req models.OrderRequest, idempotencyKey string) (*models.OrderResponse, error)
}

// OrderService orchestrates order finalization: client-side validation, the
// single backend write, and local-state reconciliation. The cart stays
// authoritative until the backend acknowledges the order; only an explicit
// success clears it.
type OrderService struct {
	backend  OrderCreator
	validate *validator.Validate
	log      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(backend OrderCreator, log *slog.Logger) *OrderService {
	return &OrderService{
		backend:  backend,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Submit finalizes the session's cart as one order.
//
// Validation failures (empty cart, missing customer name) are reported before
// any network call and leave all state unchanged. A submission already in
// flight for the session is rejected rather than duplicated. On backend
// failure the cart and form survive untouched so the operator can retry.
func (s *OrderService) Submit(ctx context.Context, sess *session.Session) (*models.OrderResponse, error) {
	if !sess.BeginSubmit() {
		return nil, ErrSubmissionInFlight
	}
	defer sess.EndSubmit()

	sess.Lock()
	lines := sess.Cart.Lines()
	cliente := sess.Customer
	sess.Unlock()

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := s.validate.Struct(cliente); err != nil {
		return nil, ErrMissingCustomerName
	}

	req := models.OrderRequest{
		Cliente:  cliente,
		Carrinho: lines,
	}

	// One key per attempt; a retry after failure is a new attempt.
	key := uuid.New().String()

	resp, err := s.backend.CreateOrder(ctx, req, key)
	if err != nil {
		s.log.Error("order submission failed", "session_id", sess.ID, "error", err)
		return nil, err
	}

	sess.Lock()
	sess.Cart.Clear()
	sess.ResetCustomer()
	sess.Unlock()

	s.log.Info("order submitted",
		"session_id", sess.ID,
		"items_count", len(lines),
		"avisos_count", len(resp.Avisos),
	)

	return resp, nil
}
