package cart

import (
	"errors"
	"strconv"

	"github.com/delicioso/admin-gateway/internal/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrLineNotFound    = errors.New("cart line not found")
)

// Cart is an ordered collection of lines, at most one per product ID.
// It holds no references to the catalog: each line is a snapshot of the
// product at the time it was added. Cart is not safe for concurrent use;
// callers serialize access (see session.Session).
type Cart struct {
	lines []models.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts qtd units of p into the cart. If a line for p already exists its
// quantity is incremented instead of appending a duplicate line. The line
// subtotal is recomputed on every path.
func (c *Cart) Add(p models.Product, qtd int) error {
	if qtd < 1 {
		return ErrInvalidQuantity
	}

	for i := range c.lines {
		if c.lines[i].ID == p.ID {
			c.lines[i].Qtd += qtd
			c.lines[i].Subtotal = c.lines[i].Preco * float64(c.lines[i].Qtd)
			return nil
		}
	}

	c.lines = append(c.lines, models.CartLine{
		ID:            p.ID,
		Nome:          p.Nome,
		Preco:         p.Preco,
		IDEmbalagem:   p.IDEmbalagem,
		NomeEmbalagem: p.NomeEmbalagem,
		Qtd:           qtd,
		Subtotal:      p.Preco * float64(qtd),
	})
	return nil
}

// SetQuantity replaces the quantity of the line at idx. A quantity below one
// is rejected; removal is an explicit separate operation.
func (c *Cart) SetQuantity(idx, qtd int) error {
	if idx < 0 || idx >= len(c.lines) {
		return ErrLineNotFound
	}
	if qtd < 1 {
		return ErrInvalidQuantity
	}

	c.lines[idx].Qtd = qtd
	c.lines[idx].Subtotal = c.lines[idx].Preco * float64(qtd)
	return nil
}

// Remove deletes the line at idx, preserving the order of the rest.
func (c *Cart) Remove(idx int) error {
	if idx < 0 || idx >= len(c.lines) {
		return ErrLineNotFound
	}

	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Subtotal sums the line subtotals, without shipping.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Subtotal
	}
	return sum
}

// Total sums the line subtotals plus the shipping charge.
func Total(lines []models.CartLine, frete float64) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal
	}
	return sum + frete
}

// ParseFrete converts the raw shipping input to a value usable in totals.
// Unparseable or negative input counts as zero.
func ParseFrete(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
