package crm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/storefront"
)

// Store, style, catalog, and payment-method lookups. All public: the store
// context renders before any authentication happens.

// GetStore fetches the store identity for a slug
func (c *Client) GetStore(ctx context.Context, slug string) (*storefront.Store, error) {
	var store storefront.Store
	path := fmt.Sprintf("/stores/%s", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &store); err != nil {
		return nil, err
	}
	if store.Slug == "" {
		store.Slug = slug
	}
	return &store, nil
}

// GetStyle fetches the visual theme for a slug
func (c *Client) GetStyle(ctx context.Context, slug string) (*storefront.StyleConfig, error) {
	var style storefront.StyleConfig
	path := fmt.Sprintf("/stores/%s/style", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &style); err != nil {
		return nil, err
	}
	style = style.Normalize()
	return &style, nil
}

// ListProducts fetches the full product list for a slug
func (c *Client) ListProducts(ctx context.Context, slug string) ([]catalog.Product, error) {
	var products []catalog.Product
	path := fmt.Sprintf("/stores/%s/products", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches the category list for a slug
func (c *Client) ListCategories(ctx context.Context, slug string) ([]catalog.Category, error) {
	var categories []catalog.Category
	path := fmt.Sprintf("/stores/%s/categories", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListPaymentMethods fetches the active payment methods for a slug
func (c *Client) ListPaymentMethods(ctx context.Context, slug string) ([]storefront.PaymentMethod, error) {
	var methods []storefront.PaymentMethod
	path := fmt.Sprintf("/stores/%s/payment-methods", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &methods); err != nil {
		return nil, err
	}
	active := methods[:0]
	for _, m := range methods {
		if m.Activo {
			active = append(active, m)
		}
	}
	return active, nil
}

// UserProfile is the CRM's view of an authenticated customer
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre,omitempty"`
	Telefono string `json:"telefono,omitempty"`
}

// GetUser fetches a user profile by id with the bearer token attached
func (c *Client) GetUser(ctx context.Context, bearer, userID string) (*UserProfile, error) {
	var profile UserProfile
	path := fmt.Sprintf("/users/%s", url.PathEscape(userID))
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
