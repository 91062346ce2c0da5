package models

// Wire types shared with the Delicioso backend API. JSON field names follow
// the backend contract, which is in Portuguese.

// Product is a catalog entry as returned by GET /api/produtos.
// Products are read-only reference data; the cart copies the fields it
// needs at the time an item is added.
type Product struct {
	ID            int64   `json:"id"`
	Nome          string  `json:"nome"`
	Preco         float64 `json:"preco"`
	IDEmbalagem   *int64  `json:"id_embalagem,omitempty"`
	NomeEmbalagem string  `json:"nome_embalagem,omitempty"`
}

// NewProduct is the body of POST /api/produtos.
type NewProduct struct {
	Nome        string  `json:"nome"`
	Preco       float64 `json:"preco"`
	IDEmbalagem *int64  `json:"id_embalagem"`
}

// CartLine is one aggregated cart entry: a snapshot of the product plus
// quantity and the derived subtotal. Price changes in the catalog after the
// line was added do not affect it.
type CartLine struct {
	ID            int64   `json:"id"`
	Nome          string  `json:"nome"`
	Preco         float64 `json:"preco"`
	IDEmbalagem   *int64  `json:"id_embalagem,omitempty"`
	NomeEmbalagem string  `json:"nome_embalagem,omitempty"`
	Qtd           int     `json:"qtd"`
	Subtotal      float64 `json:"subtotal"`
}

// Customer holds the order form fields. Frete is kept as the raw entered
// string; the backend coerces it, and unparseable values count as zero for
// local total display.
type Customer struct {
	Nome      string `json:"nome" validate:"required"`
	Endereco  string `json:"endereco"`
	Frete     string `json:"frete"`
	Pagamento string `json:"pagamento"`
}

// DefaultPaymentMethod is the payment method the order form resets to.
const DefaultPaymentMethod = "Dinheiro"

// OrderRequest is the body of POST /api/pedidos.
type OrderRequest struct {
	Cliente  Customer   `json:"cliente"`
	Carrinho []CartLine `json:"carrinho"`
}

// OrderResponse is the backend's answer to a created order. Avisos are
// advisory stock warnings; the order is already committed when they arrive.
type OrderResponse struct {
	Message string   `json:"message"`
	Avisos  []string `json:"avisos,omitempty"`
}

// Message is the generic acknowledgement returned by backend write endpoints.
type Message struct {
	Message string `json:"message"`
}

// Packaging is an inventory unit as returned by GET /api/embalagens.
type Packaging struct {
	ID         int64  `json:"id"`
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
}

// NewPackaging is the body of POST /api/embalagens. Posting an existing name
// adds to its stock on the backend side.
type NewPackaging struct {
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
}

// StockUpdate is the body of POST /api/embalagens/editar. Quantidade is an
// absolute correction, not a delta.
type StockUpdate struct {
	ID         int64 `json:"id"`
	Quantidade int   `json:"quantidade"`
}

// Dashboard aggregates the metrics returned by GET /api/dashboard.
type Dashboard struct {
	FaturamentoTotal float64            `json:"faturamento_total"`
	APagarTotal      float64            `json:"a_pagar_total"`
	FreteMaior2      float64            `json:"frete_maior_2"`
	QtdFreteMaior2   int                `json:"qtd_frete_maior_2"`
	FreteMenor2      float64            `json:"frete_menor_2"`
	QtdFreteMenor2   int                `json:"qtd_frete_menor_2"`
	Pagamentos       map[string]float64 `json:"pagamentos"`
	Devedores        []Debtor           `json:"devedores"`
}

// Debtor is one unpaid order in the dashboard report.
type Debtor struct {
	IDPedido int64   `json:"id_pedido"`
	Nome     string  `json:"nome"`
	Valor    float64 `json:"valor"`
}

// OrderRecord is one row of the order history (GET /api/pedidos).
type OrderRecord struct {
	ID        int64   `json:"id"`
	DataHora  string  `json:"data_hora"`
	Cliente   string  `json:"cliente"`
	Descricao string  `json:"descricao"`
	Pagamento string  `json:"pagamento"`
	Total     float64 `json:"total"`
}

// CartView is the full projection of a session's cart returned after every
// cart mutation.
type CartView struct {
	Itens    []CartLine `json:"itens"`
	Subtotal float64    `json:"subtotal"`
	Frete    float64    `json:"frete"`
	Total    float64    `json:"total"`
	Cliente  Customer   `json:"cliente"`
}
