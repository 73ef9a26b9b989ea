package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/order"
	"github.com/erp/storefront/internal/domain/session"
	"github.com/erp/storefront/internal/domain/shared"
	"github.com/erp/storefront/internal/infrastructure/crm"
)

// Gateway is the slice of the CRM API checkout needs
type Gateway interface {
	GetUser(ctx context.Context, bearer, userID string) (*crm.UserProfile, error)
	UpsertLead(ctx context.Context, bearer, slug string, req crm.LeadRequest) error
	CreateOrder(ctx context.Context, bearer, slug string, req crm.OrderRequest) (*crm.OrderCreated, error)
}

// Form carries the delivery details the customer fills in at checkout
type Form struct {
	Direccion  string
	Telefono   string
	MetodoPago string
	Notas      string
}

// Receipt is the result of a successful submission
type Receipt struct {
	OrderID   string       `json:"order_id"`
	Estado    order.Status `json:"estado"`
	Reference string       `json:"reference"`
	Total     string       `json:"total"`
}

// Service turns a persisted cart into a submitted order. A submission is
// a single attempt: local preconditions are checked before any network
// call, the lead upsert is best-effort, the order call happens exactly
// once, and the cart is cleared only after the order was accepted.
type Service struct {
	store   session.Store
	gate    *identityapp.Gate
	gateway Gateway
	logger  *zap.Logger
}

// NewService creates a checkout service
func NewService(store session.Store, gate *identityapp.Gate, gateway Gateway, logger *zap.Logger) *Service {
	return &Service{store: store, gate: gate, gateway: gateway, logger: logger}
}

// Submit runs one checkout attempt for the slug.
//
// The token is snapshotted once at the start; a logout racing the
// submission does not change the credentials already in flight. Failures
// are never retried here, the customer resubmits explicitly.
func (s *Service) Submit(ctx context.Context, slug string, form Form) (*Receipt, error) {
	token, err := s.gate.Token(ctx, slug)
	if err != nil {
		return nil, err
	}

	c, err := s.store.LoadCart(ctx, slug)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	req := buildOrderRequest(token.UserID, c, form)

	s.upsertLead(ctx, slug, token)

	created, err := s.gateway.CreateOrder(ctx, token.AccessToken, slug, req)
	if err != nil {
		if crm.IsAuthFailure(err) {
			s.gate.HandleAuthFailure(ctx, slug)
		}
		return nil, err
	}

	if err := s.store.DeleteCart(ctx, slug); err != nil {
		// The order went through; a stale cart is an annoyance, not a failure
		s.logger.Warn("failed to clear cart after order submission",
			zap.String("store_slug", slug),
			zap.String("order_id", created.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("order submitted",
		zap.String("store_slug", slug),
		zap.String("order_id", created.ID),
		zap.String("estado", string(created.Estado)),
		zap.String("total", req.Total),
	)

	return &Receipt{
		OrderID:   created.ID,
		Estado:    created.Estado,
		Reference: req.Reference,
		Total:     req.Total,
	}, nil
}

// upsertLead records the customer as a CRM lead. Lead creation is
// opportunistic: a failure is logged and swallowed, it never blocks the
// order.
func (s *Service) upsertLead(ctx context.Context, slug string, token *identity.SessionToken) {
	lead := crm.LeadRequest{
		UserID: token.UserID,
		Email:  token.Email,
		Nombre: token.Nombre,
	}

	if lead.Email == "" || lead.Nombre == "" {
		if profile, err := s.gateway.GetUser(ctx, token.AccessToken, token.UserID); err == nil {
			if lead.Email == "" {
				lead.Email = profile.Email
			}
			if lead.Nombre == "" {
				lead.Nombre = profile.Nombre
			}
			lead.Telefono = profile.Telefono
		}
	}

	if err := s.gateway.UpsertLead(ctx, token.AccessToken, slug, lead); err != nil {
		s.logger.Warn("lead upsert failed, continuing with order",
			zap.String("store_slug", slug),
			zap.Error(err),
		)
	}
}

// buildOrderRequest derives the order payload from the cart. Monetary
// values stay unrounded until this point and are fixed to two decimal
// places only in the outgoing payload.
func buildOrderRequest(userID string, c *cart.Cart, form Form) crm.OrderRequest {
	items := make([]crm.OrderItem, 0, c.Len())
	for _, it := range c.Items {
		items = append(items, crm.OrderItem{
			ProductID: it.ProductID,
			Nombre:    it.Nombre,
			Cantidad:  it.Quantity,
			Precio:    it.Precio.StringFixed(2),
			Subtotal:  it.Subtotal().StringFixed(2),
		})
	}
	return crm.OrderRequest{
		UserID:     userID,
		Items:      items,
		Total:      c.Total().StringFixed(2),
		Direccion:  form.Direccion,
		Telefono:   form.Telefono,
		MetodoPago: form.MetodoPago,
		Notas:      form.Notas,
		Reference:  uuid.NewString(),
	}
}
