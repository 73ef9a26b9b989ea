package orders

import (
	"context"

	"go.uber.org/zap"

	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/order"
	"github.com/erp/storefront/internal/infrastructure/crm"
)

// Gateway is the slice of the CRM API the order history needs
type Gateway interface {
	ListOrders(ctx context.Context, bearer, slug, userID string) ([]crm.Order, error)
}

// OrderView is one historical order decorated for display
type OrderView struct {
	ID        string          `json:"id"`
	Estado    order.Status    `json:"estado"`
	Display   order.Display   `json:"display"`
	Total     string          `json:"total"`
	Items     []crm.OrderItem `json:"items,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// Service fetches the authenticated customer's order history
type Service struct {
	gate    *identityapp.Gate
	gateway Gateway
	logger  *zap.Logger
}

// NewService creates an order history service
func NewService(gate *identityapp.Gate, gateway Gateway, logger *zap.Logger) *Service {
	return &Service{gate: gate, gateway: gateway, logger: logger}
}

// List fetches the order history for the slug's session. The token is
// snapshotted once; an upstream 401/403 discards it and the error is
// returned without retrying.
func (s *Service) List(ctx context.Context, slug string) ([]OrderView, error) {
	token, err := s.gate.Token(ctx, slug)
	if err != nil {
		return nil, err
	}

	orders, err := s.gateway.ListOrders(ctx, token.AccessToken, slug, token.UserID)
	if err != nil {
		if crm.IsAuthFailure(err) {
			s.gate.HandleAuthFailure(ctx, slug)
		}
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{
			ID:        o.ID,
			Estado:    o.Estado,
			Display:   order.DisplayFor(o.Estado),
			Total:     o.Total,
			Items:     o.Items,
			CreatedAt: o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return views, nil
}
