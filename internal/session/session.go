package session

import (
	"context"
	"sync"
	"time"

	"github.com/delicioso/admin-gateway/internal/cart"
	"github.com/delicioso/admin-gateway/internal/models"
)

// Session is one operator's working state: the active cart plus the order
// form fields. It replaces the original ambient globals so independent
// sessions (and tests) cannot interfere with each other.
//
// The embedded mutex serializes cart and form access; HTTP handlers lock
// around mutations. The submission flag is managed separately through
// BeginSubmit/EndSubmit.
type Session struct {
	sync.Mutex

	ID       string
	Cart     *cart.Cart
	Customer models.Customer

	submitMu   sync.Mutex
	submitting bool

	lastSeen time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:       id,
		Cart:     cart.New(),
		Customer: models.Customer{Pagamento: models.DefaultPaymentMethod},
		lastSeen: time.Now(),
	}
}

// BeginSubmit marks an order submission as in flight. It reports false when a
// submission is already running, closing the double-submission race.
func (s *Session) BeginSubmit() bool {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

// EndSubmit releases the in-flight guard.
func (s *Session) EndSubmit() {
	s.submitMu.Lock()
	s.submitting = false
	s.submitMu.Unlock()
}

// ResetCustomer clears the order form back to its defaults. Caller holds the
// session lock.
func (s *Session) ResetCustomer() {
	s.Customer = models.Customer{Pagamento: models.DefaultPaymentMethod}
}

type ctxKey struct{}

// NewContext returns ctx carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session placed by the middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}
