package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/interfaces/http/middleware"
)

// SessionHandler manages the per-slug session token. Authentication itself
// happens in the external login flow; this handler only stores, inspects,
// and discards the token it hands off.
type SessionHandler struct {
	BaseHandler
	gate *identityapp.Gate
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(gate *identityapp.Gate) *SessionHandler {
	return &SessionHandler{gate: gate}
}

// RegisterRoutes registers session routes
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores/:slug", middleware.StoreSlug())
	stores.GET("/session", h.GetState)
	stores.POST("/session", h.Login)
	stores.DELETE("/session", h.Logout)
}

// SessionStateResponse is the derived access state for a slug
type SessionStateResponse struct {
	State identity.State `json:"state"`
}

// GetState returns whether the store's gated views are accessible
func (h *SessionHandler) GetState(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	state, err := h.gate.StateFor(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SessionStateResponse{State: state})
}

// LoginRequest is the token handed off by the external login flow
type LoginRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Nombre      string `json:"nombre"`
}

// Login stores the session token for the slug
func (h *SessionHandler) Login(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err := h.gate.Login(c.Request.Context(), slug, identity.SessionToken{
		UserID:      req.UserID,
		AccessToken: req.AccessToken,
		Email:       req.Email,
		Nombre:      req.Nombre,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SessionStateResponse{State: identity.StateUnlocked})
}

// Logout discards the session token and the cart for the slug
func (h *SessionHandler) Logout(c *gin.Context) {
	slug := middleware.GetStoreSlug(c)

	if err := h.gate.Logout(c.Request.Context(), slug); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
