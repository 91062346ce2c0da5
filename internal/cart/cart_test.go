package cart

import (
	"testing"

	"github.com/delicioso/admin-gateway/internal/models"
)

var (
	bolo = models.Product{ID: 1, Nome: "Bolo", Preco: 20}
	doce = models.Product{ID: 2, Nome: "Doce", Preco: 5}
)

func TestCart_Add(t *testing.T) {
	type addOp struct {
		p   models.Product
		qtd int
	}

	tests := []struct {
		name         string
		adds         []addOp
		wantErr      error
		wantLen      int
		wantQtd      int
		wantSubtotal float64
	}{
		{
			name:    "single add",
			adds:    []addOp{{bolo, 2}},
			wantLen: 1, wantQtd: 2, wantSubtotal: 40,
		},
		{
			name:    "same product merges into one line",
			adds:    []addOp{{bolo, 2}, {bolo, 3}},
			wantLen: 1, wantQtd: 5, wantSubtotal: 100,
		},
		{
			name:    "distinct products keep separate lines",
			adds:    []addOp{{bolo, 1}, {doce, 1}},
			wantLen: 2, wantQtd: 1, wantSubtotal: 20,
		},
		{
			name:    "zero quantity rejected",
			adds:    []addOp{{bolo, 0}},
			wantErr: ErrInvalidQuantity, wantLen: 0,
		},
		{
			name:    "negative quantity rejected",
			adds:    []addOp{{bolo, -3}},
			wantErr: ErrInvalidQuantity, wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()

			var lastErr error
			for _, add := range tt.adds {
				lastErr = c.Add(add.p, add.qtd)
			}

			if lastErr != tt.wantErr {
				t.Fatalf("Add() error = %v, want %v", lastErr, tt.wantErr)
			}
			if c.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", c.Len(), tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}

			line := c.Lines()[0]
			if line.Qtd != tt.wantQtd {
				t.Errorf("line qtd = %d, want %d", line.Qtd, tt.wantQtd)
			}
			if line.Subtotal != tt.wantSubtotal {
				t.Errorf("line subtotal = %f, want %f", line.Subtotal, tt.wantSubtotal)
			}
		})
	}
}

func TestCart_Add_PreservesInsertionOrder(t *testing.T) {
	c := New()
	for _, p := range []models.Product{doce, bolo} {
		if err := c.Add(p, 1); err != nil {
			t.Fatalf("Add() unexpected error: %v", err)
		}
	}
	// Merging must not reorder
	if err := c.Add(doce, 1); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	lines := c.Lines()
	if lines[0].ID != doce.ID || lines[1].ID != bolo.ID {
		t.Errorf("lines out of insertion order: %v", lines)
	}
}

func TestCart_Add_SnapshotsPrice(t *testing.T) {
	c := New()
	p := models.Product{ID: 7, Nome: "Torta", Preco: 15}
	if err := c.Add(p, 1); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	// Later catalog price changes must not leak into existing lines
	p.Preco = 99

	line := c.Lines()[0]
	if line.Preco != 15 || line.Subtotal != 15 {
		t.Errorf("line = %+v, want snapshot price 15", line)
	}
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name    string
		idx     int
		qtd     int
		wantErr error
	}{
		{name: "valid update", idx: 0, qtd: 4, wantErr: nil},
		{name: "zero rejected", idx: 0, qtd: 0, wantErr: ErrInvalidQuantity},
		{name: "negative rejected", idx: 0, qtd: -1, wantErr: ErrInvalidQuantity},
		{name: "index out of range", idx: 5, qtd: 1, wantErr: ErrLineNotFound},
		{name: "negative index", idx: -1, qtd: 1, wantErr: ErrLineNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if err := c.Add(bolo, 2); err != nil {
				t.Fatalf("Add() unexpected error: %v", err)
			}

			err := c.SetQuantity(tt.idx, tt.qtd)
			if err != tt.wantErr {
				t.Fatalf("SetQuantity() error = %v, want %v", err, tt.wantErr)
			}

			line := c.Lines()[0]
			if tt.wantErr != nil {
				// Rejected updates leave the line untouched
				if line.Qtd != 2 || line.Subtotal != 40 {
					t.Errorf("line mutated on rejected update: %+v", line)
				}
				return
			}

			if line.Qtd != tt.qtd {
				t.Errorf("qtd = %d, want %d", line.Qtd, tt.qtd)
			}
			if want := bolo.Preco * float64(tt.qtd); line.Subtotal != want {
				t.Errorf("subtotal = %f, want %f", line.Subtotal, want)
			}
		})
	}
}

func TestCart_Remove(t *testing.T) {
	c := New()
	if err := c.Add(bolo, 1); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if err := c.Add(doce, 1); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	if err := c.Remove(3); err != ErrLineNotFound {
		t.Fatalf("Remove(3) error = %v, want %v", err, ErrLineNotFound)
	}

	if err := c.Remove(0); err != nil {
		t.Fatalf("Remove(0) unexpected error: %v", err)
	}
	if c.Len() != 1 || c.Lines()[0].ID != doce.ID {
		t.Errorf("unexpected lines after remove: %v", c.Lines())
	}

	// Removing the last line empties the cart and zeroes the total
	if err := c.Remove(0); err != nil {
		t.Fatalf("Remove(0) unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if total := Total(c.Lines(), 0); total != 0 {
		t.Errorf("Total() = %f, want 0", total)
	}
}

func TestCart_Clear(t *testing.T) {
	c := New()
	if err := c.Add(bolo, 2); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Subtotal() != 0 {
		t.Errorf("Subtotal() = %f, want 0", c.Subtotal())
	}
}

func TestTotal(t *testing.T) {
	lines := []models.CartLine{
		{ID: 1, Preco: 10, Qtd: 2, Subtotal: 20},
		{ID: 2, Preco: 5, Qtd: 3, Subtotal: 15},
	}

	if got := Total(lines, 4.5); got != 39.5 {
		t.Errorf("Total() = %f, want 39.5", got)
	}
	if got := Total(nil, 0); got != 0 {
		t.Errorf("Total(nil, 0) = %f, want 0", got)
	}
}

func TestParseFrete(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3", 3},
		{"4.5", 4.5},
		{"", 0},
		{"abc", 0},
		{"-2", 0},
	}

	for _, tt := range tests {
		if got := ParseFrete(tt.in); got != tt.want {
			t.Errorf("ParseFrete(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := New()
	if err := c.Add(bolo, 1); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	lines := c.Lines()
	lines[0].Qtd = 99
	lines[0].Subtotal = 9999

	if got := c.Lines()[0]; got.Qtd != 1 || got.Subtotal != 20 {
		t.Errorf("internal state mutated through Lines(): %+v", got)
	}
}
