package handler

import (
	"github.com/gin-gonic/gin"

	storefrontapp "github.com/erp/storefront/internal/application/storefront"
	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/interfaces/http/middleware"
)

// StoreHandler serves the store context and the filtered catalog
type StoreHandler struct {
	BaseHandler
	service *storefrontapp.Service
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(service *storefrontapp.Service) *StoreHandler {
	return &StoreHandler{service: service}
}

// RegisterRoutes registers store context and catalog routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores/:slug", middleware.StoreSlug())
	stores.GET("/context", h.GetContext)
	stores.GET("/products", h.ListProducts)
}

// GetContext returns the full render context for a store slug
func (h *StoreHandler) GetContext(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	storeCtx, err := h.service.LoadContext(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, storeCtx)
}

// ProductListRequest carries the catalog filter query parameters
type ProductListRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Price    string `form:"price" binding:"omitempty,oneof=all 0-25 25-50 50-100 100+"`
	View     string `form:"view" binding:"omitempty,oneof=grid list masonry detailed"`
}

// ListProducts returns the filtered product list for a store slug
func (h *StoreHandler) ListProducts(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	var req ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := catalog.Filter{
		Category: req.Category,
		Search:   req.Search,
		Price:    catalog.PriceBucket(req.Price),
	}

	view, err := h.service.Products(c.Request.Context(), slug, filter, catalog.ViewMode(req.View))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}
