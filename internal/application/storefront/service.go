package storefront

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/shared"
	"github.com/erp/storefront/internal/domain/storefront"
	"github.com/erp/storefront/internal/infrastructure/crm"
)

// ContextGateway is the slice of the CRM API the store context needs.
// All of it is public: the storefront renders before any login happens.
type ContextGateway interface {
	GetStore(ctx context.Context, slug string) (*storefront.Store, error)
	GetStyle(ctx context.Context, slug string) (*storefront.StyleConfig, error)
	ListProducts(ctx context.Context, slug string) ([]catalog.Product, error)
	ListCategories(ctx context.Context, slug string) ([]catalog.Category, error)
	ListPaymentMethods(ctx context.Context, slug string) ([]storefront.PaymentMethod, error)
}

// StoreContext bundles everything the storefront shell needs to render for
// one slug: identity, theme, categories, and payment options
type StoreContext struct {
	Store          storefront.Store           `json:"store"`
	Style          storefront.StyleConfig     `json:"style"`
	Categories     []catalog.Category         `json:"categories"`
	PaymentMethods []storefront.PaymentMethod `json:"payment_methods"`
}

// Service loads store context and catalog views from the upstream CRM
type Service struct {
	gateway ContextGateway
	logger  *zap.Logger
}

// NewService creates a store context service
func NewService(gateway ContextGateway, logger *zap.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// LoadContext fetches store identity, style, categories, and payment
// methods for a slug. The store lookup is authoritative: an unknown slug is
// ErrStoreNotFound. Style, categories, and payment methods degrade to
// defaults when their fetches fail, so a partial upstream outage still
// renders a usable storefront.
func (s *Service) LoadContext(ctx context.Context, slug string) (*StoreContext, error) {
	store, err := s.gateway.GetStore(ctx, slug)
	if err != nil {
		var apiErr *crm.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, shared.ErrStoreNotFound
		}
		return nil, err
	}

	result := &StoreContext{Store: *store}

	if style, err := s.gateway.GetStyle(ctx, slug); err == nil {
		result.Style = *style
	} else {
		s.logger.Warn("style fetch failed, using defaults",
			zap.String("store_slug", slug), zap.Error(err))
		result.Style = storefront.StyleConfig{}.Normalize()
	}

	if categories, err := s.gateway.ListCategories(ctx, slug); err == nil {
		result.Categories = categories
	} else {
		s.logger.Warn("category fetch failed",
			zap.String("store_slug", slug), zap.Error(err))
		result.Categories = []catalog.Category{}
	}

	if methods, err := s.gateway.ListPaymentMethods(ctx, slug); err == nil {
		result.PaymentMethods = methods
	} else {
		s.logger.Warn("payment method fetch failed",
			zap.String("store_slug", slug), zap.Error(err))
		result.PaymentMethods = []storefront.PaymentMethod{}
	}

	return result, nil
}

// CatalogView is a filtered product list plus the view mode to render it in
type CatalogView struct {
	Products []catalog.Product `json:"products"`
	ViewMode catalog.ViewMode  `json:"view_mode"`
	Total    int               `json:"total"`
}

// Products fetches the product list and applies the filter. The requested
// view mode wins over the store default; it shapes rendering only and
// never changes the filtered set.
func (s *Service) Products(ctx context.Context, slug string, filter catalog.Filter, view catalog.ViewMode) (*CatalogView, error) {
	products, err := s.gateway.ListProducts(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !view.IsValid() {
		if style, err := s.gateway.GetStyle(ctx, slug); err == nil {
			view = style.ViewMode
		} else {
			view = catalog.DefaultViewMode
		}
	}

	filtered := filter.Apply(products)
	return &CatalogView{
		Products: filtered,
		ViewMode: view,
		Total:    len(filtered),
	}, nil
}
