package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the upstream CRM API. Field names
// follow the upstream payloads (nombre, precio).
type Product struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Imagen      string          `json:"imagen,omitempty"`
	Categoria   string          `json:"categoria,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	Activo      bool            `json:"activo"`
}

// Category is a product grouping defined by the store owner
type Category struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// ViewMode controls the rendering shape of the catalog. It never changes
// which products are in the filtered set.
type ViewMode string

const (
	ViewModeGrid     ViewMode = "grid"
	ViewModeList     ViewMode = "list"
	ViewModeMasonry  ViewMode = "masonry"
	ViewModeDetailed ViewMode = "detailed"
)

// IsValid reports whether the view mode is one of the supported shapes
func (m ViewMode) IsValid() bool {
	switch m {
	case ViewModeGrid, ViewModeList, ViewModeMasonry, ViewModeDetailed:
		return true
	}
	return false
}

// DefaultViewMode is used when a store's style config does not set one
const DefaultViewMode = ViewModeGrid
