package storefront

import "github.com/erp/storefront/internal/domain/catalog"

// Store is the identity of a tenant store, addressed by its slug
type Store struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// StyleConfig is the per-store visual theme. It is a read-only snapshot
// fetched once per view: no mutation, no persistence beyond the render.
type StyleConfig struct {
	PrimaryColor   string           `json:"primary_color"`
	SecondaryColor string           `json:"secondary_color"`
	AccentColor    string           `json:"accent_color,omitempty"`
	Font           string           `json:"font"`
	Template       string           `json:"template"`
	ViewMode       catalog.ViewMode `json:"view_mode"`
}

// Normalize fills defaults for optional style fields the upstream may omit
func (s StyleConfig) Normalize() StyleConfig {
	if s.ViewMode == "" || !s.ViewMode.IsValid() {
		s.ViewMode = catalog.DefaultViewMode
	}
	if s.Template == "" {
		s.Template = "classic"
	}
	return s
}

// PaymentMethod is an active payment option configured for the store
type PaymentMethod struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo,omitempty"`
	Activo bool   `json:"activo"`
}
