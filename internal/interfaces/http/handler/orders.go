package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/erp/storefront/internal/application/identity"
	ordersapp "github.com/erp/storefront/internal/application/orders"
	"github.com/erp/storefront/internal/interfaces/http/middleware"
)

// OrdersHandler serves the customer's order history
type OrdersHandler struct {
	BaseHandler
	service *ordersapp.Service
	gate    *identityapp.Gate
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(service *ordersapp.Service, gate *identityapp.Gate) *OrdersHandler {
	return &OrdersHandler{service: service, gate: gate}
}

// RegisterRoutes registers the order history route
func (h *OrdersHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores/:slug", middleware.StoreSlug())
	stores.GET("/orders", middleware.RequireSession(h.gate), h.List)
}

// List returns the authenticated customer's order history, newest first
// as delivered by the upstream API
func (h *OrdersHandler) List(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	views, err := h.service.List(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}
