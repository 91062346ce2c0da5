package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/delicioso/admin-gateway/internal/models"
	"github.com/sony/gobreaker/v2"
)

// APIError is a non-2xx answer from the backend. The error taxonomy is flat:
// callers treat 4xx and 5xx alike and retry manually, never automatically.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

// Client talks to the external Delicioso REST API, the owner of all
// persistent state. Requests flow through a circuit breaker so a dead
// backend fails fast instead of stacking up timeouts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        *slog.Logger
}

// New creates a backend client. timeout applies per request.
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "delicioso-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		log:     log,
	}
}

// ListProducts fetches the product catalog (GET /api/produtos).
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/produtos", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct registers a new product (POST /api/produtos).
func (c *Client) CreateProduct(ctx context.Context, p models.NewProduct) (*models.Message, error) {
	var msg models.Message
	if err := c.do(ctx, http.MethodPost, "/api/produtos", nil, p, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListPackagings fetches the packaging inventory (GET /api/embalagens).
func (c *Client) ListPackagings(ctx context.Context) ([]models.Packaging, error) {
	var packagings []models.Packaging
	if err := c.do(ctx, http.MethodGet, "/api/embalagens", nil, nil, &packagings); err != nil {
		return nil, err
	}
	return packagings, nil
}

// CreatePackaging registers packaging stock (POST /api/embalagens). Posting
// an existing name adds to its stock on the backend side.
func (c *Client) CreatePackaging(ctx context.Context, p models.NewPackaging) (*models.Message, error) {
	var msg models.Message
	if err := c.do(ctx, http.MethodPost, "/api/embalagens", nil, p, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SetPackagingStock corrects a packaging's stock to an absolute value
// (POST /api/embalagens/editar).
func (c *Client) SetPackagingStock(ctx context.Context, u models.StockUpdate) (*models.Message, error) {
	var msg models.Message
	if err := c.do(ctx, http.MethodPost, "/api/embalagens/editar", nil, u, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetDashboard fetches aggregated metrics for the ISO date range
// (GET /api/dashboard).
func (c *Client) GetDashboard(ctx context.Context, dataInicio, dataFim string) (*models.Dashboard, error) {
	var dash models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", dateQuery(dataInicio, dataFim), nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// ListOrders fetches the order history for the ISO date range
// (GET /api/pedidos).
func (c *Client) ListOrders(ctx context.Context, dataInicio, dataFim string) ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	if err := c.do(ctx, http.MethodGet, "/api/pedidos", dateQuery(dataInicio, dataFim), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder submits a finalized order (POST /api/pedidos). idempotencyKey
// lets the backend deduplicate a resubmitted request.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest, idempotencyKey string) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	headers := http.Header{}
	if idempotencyKey != "" {
		headers.Set("X-Idempotency-Key", idempotencyKey)
	}
	if err := c.doWithHeaders(ctx, http.MethodPost, "/api/pedidos", nil, req, &resp, headers); err != nil {
		return nil, err
	}
	return &resp, nil
}

func dateQuery(dataInicio, dataFim string) url.Values {
	if dataInicio == "" && dataFim == "" {
		return nil
	}
	q := url.Values{}
	q.Set("data_inicio", dataInicio)
	q.Set("data_fim", dataFim)
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	return c.doWithHeaders(ctx, method, path, query, body, out, nil)
}

func (c *Client) doWithHeaders(ctx context.Context, method, path string, query url.Values, body, out interface{}, headers http.Header) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	respBody, err := c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("backend request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		}
		return data, nil
	})
	if err != nil {
		c.log.Warn("backend call failed",
			"method", method,
			"path", path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return err
	}

	c.log.Debug("backend call",
		"method", method,
		"path", path,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
