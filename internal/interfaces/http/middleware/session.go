package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/interfaces/http/dto"
)

// RequireSession gates a route group on session token presence for the
// request's slug. Presence only: the token is not verified here, an
// invalid one is discovered when the upstream API rejects it.
func RequireSession(gate *identityapp.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := GetStoreSlug(c)
		state, err := gate.StateFor(c.Request.Context(), slug)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal,
					"Failed to read session state", GetRequestID(c)))
			return
		}
		if state != identity.StateUnlocked {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeNoSession,
					"No session token present for this store", GetRequestID(c)))
			return
		}
		c.Next()
	}
}
