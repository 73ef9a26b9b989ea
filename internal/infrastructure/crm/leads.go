package crm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// LeadRequest creates or updates a CRM lead record. Leads are created
// opportunistically at checkout; the caller treats failures as
// non-blocking.
type LeadRequest struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Nombre    string `json:"nombre,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	StoreSlug string `json:"store_slug"`
	Source    string `json:"source"`
}

// UpsertLead creates or updates the lead record for a customer
func (c *Client) UpsertLead(ctx context.Context, bearer, slug string, req LeadRequest) error {
	req.StoreSlug = slug
	if req.Source == "" {
		req.Source = "storefront_checkout"
	}
	path := fmt.Sprintf("/stores/%s/leads", url.PathEscape(slug))
	return c.doJSON(ctx, http.MethodPost, path, bearer, req, nil)
}
