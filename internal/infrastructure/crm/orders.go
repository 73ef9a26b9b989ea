package crm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/erp/storefront/internal/domain/order"
)

// OrderItem is one order line as sent to and returned by the CRM API.
// Monetary fields are strings formatted to two decimal places; the gateway
// keeps arithmetic unrounded internally and formats only here, at the
// payload boundary.
type OrderItem struct {
	ProductID string `json:"producto_id"`
	Nombre    string `json:"nombre"`
	Cantidad  int    `json:"cantidad"`
	Precio    string `json:"precio"`
	Subtotal  string `json:"subtotal"`
}

// OrderRequest is the order payload built at checkout time. It is derived,
// never stored, and sent exactly once.
type OrderRequest struct {
	UserID     string      `json:"user_id"`
	Items      []OrderItem `json:"items"`
	Total      string      `json:"total"`
	Direccion  string      `json:"direccion"`
	Telefono   string      `json:"telefono"`
	MetodoPago string      `json:"metodo_pago,omitempty"`
	Notas      string      `json:"notas,omitempty"`
	Reference  string      `json:"client_reference,omitempty"`
}

// Order is a historical order as returned by the CRM API
type Order struct {
	ID        string       `json:"id"`
	Estado    order.Status `json:"estado"`
	Total     string       `json:"total"`
	Items     []OrderItem  `json:"items,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// OrderCreated is the acknowledgement for a submitted order
type OrderCreated struct {
	ID     string       `json:"id"`
	Estado order.Status `json:"estado"`
}

// CreateOrder submits an order with the bearer token attached
func (c *Client) CreateOrder(ctx context.Context, bearer, slug string, req OrderRequest) (*OrderCreated, error) {
	var created OrderCreated
	path := fmt.Sprintf("/stores/%s/orders", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodPost, path, bearer, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListOrders fetches the authenticated user's historical orders
func (c *Client) ListOrders(ctx context.Context, bearer, slug, userID string) ([]Order, error) {
	var orders []Order
	path := fmt.Sprintf("/stores/%s/orders?user_id=%s", url.PathEscape(slug), url.QueryEscape(userID))
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
