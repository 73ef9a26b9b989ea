package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartapp "github.com/erp/storefront/internal/application/cart"
	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/interfaces/http/middleware"
)

// CartHandler serves the per-slug cart
type CartHandler struct {
	BaseHandler
	service *cartapp.Service
	gate    *identityapp.Gate
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service *cartapp.Service, gate *identityapp.Gate) *CartHandler {
	return &CartHandler{service: service, gate: gate}
}

// RegisterRoutes registers cart routes. The whole cart surface sits
// behind the presence gate; anonymous visitors get the locked view.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores/:slug", middleware.StoreSlug(), middleware.RequireSession(h.gate))
	stores.GET("/cart", h.Get)
	stores.POST("/cart/items", h.AddItem)
	stores.POST("/cart/items/:index/increment", h.Increment)
	stores.POST("/cart/items/:index/decrement", h.Decrement)
	stores.DELETE("/cart/items/:index", h.RemoveItem)
	stores.DELETE("/cart", h.Clear)
}

// CartItemResponse is one cart line with its display subtotal
type CartItemResponse struct {
	cart.Item
	Subtotal string `json:"subtotal"`
}

// CartResponse is the cart with per-line subtotals and the display total
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total string             `json:"total"`
}

func toCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, 0, c.Len())
	for _, it := range c.Items {
		items = append(items, CartItemResponse{
			Item:     it,
			Subtotal: it.Subtotal().StringFixed(2),
		})
	}
	return CartResponse{
		Items: items,
		Total: c.TotalFormatted(),
	}
}

// Get returns the current cart for the slug
func (h *CartHandler) Get(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	current, err := h.service.Get(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(current))
}

// AddItemRequest is the product snapshot placed in the cart
type AddItemRequest struct {
	ProductID   string `json:"id" binding:"required"`
	Nombre      string `json:"nombre" binding:"required"`
	Precio      string `json:"precio" binding:"required"`
	Imagen      string `json:"imagen"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion"`
}

// AddItem adds a product to the cart or increments an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	precio, err := decimal.NewFromString(req.Precio)
	if err != nil || precio.Sign() < 0 {
		h.BadRequest(c, "Invalid precio")
		return
	}

	updated, err := h.service.Add(c.Request.Context(), slug, cart.Item{
		ProductID:   req.ProductID,
		Nombre:      req.Nombre,
		Precio:      precio,
		Imagen:      req.Imagen,
		Categoria:   req.Categoria,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(updated))
}

// Increment raises the quantity of the line at index
func (h *CartHandler) Increment(c *gin.Context) {
	h.mutateAt(c, h.service.Increment)
}

// Decrement lowers the quantity of the line at index, flooring at 1
func (h *CartHandler) Decrement(c *gin.Context) {
	h.mutateAt(c, h.service.Decrement)
}

// RemoveItem deletes the line at index
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.mutateAt(c, h.service.Remove)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	if err := h.service.Clear(c.Request.Context(), slug); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *CartHandler) mutateAt(c *gin.Context, op func(ctx context.Context, slug string, index int) (*cart.Cart, error)) {
	slug := middleware.GetStoreSlug(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.BadRequest(c, "Invalid cart item index")
		return
	}

	updated, err := op(c.Request.Context(), slug, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(updated))
}
