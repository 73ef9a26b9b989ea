package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/erp/storefront/internal/application/checkout"
	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler submits orders
type CheckoutHandler struct {
	BaseHandler
	service *checkoutapp.Service
	gate    *identityapp.Gate
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service *checkoutapp.Service, gate *identityapp.Gate) *CheckoutHandler {
	return &CheckoutHandler{service: service, gate: gate}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores/:slug", middleware.StoreSlug())
	stores.POST("/checkout", middleware.RequireSession(h.gate), h.Submit)
}

// CheckoutRequest carries the delivery details for one submission
type CheckoutRequest struct {
	Direccion  string `json:"direccion" binding:"required,min=1,max=500"`
	Telefono   string `json:"telefono" binding:"required,min=1,max=50"`
	MetodoPago string `json:"metodo_pago" binding:"max=100"`
	Notas      string `json:"notas" binding:"max=2000"`
}

// Submit runs one checkout attempt. Failures are returned as-is with no
// retry; the cart stays intact for resubmission.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.service.Submit(c.Request.Context(), slug, checkoutapp.Form{
		Direccion:  req.Direccion,
		Telefono:   req.Telefono,
		MetodoPago: req.MetodoPago,
		Notas:      req.Notas,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}
