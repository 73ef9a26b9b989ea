package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/erp/storefront/internal/interfaces/http/dto"
)

// slugPattern matches lowercase alphanumerics separated by single hyphens,
// the canonical shape of a store slug
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxSlugLength = 64

// ValidStoreSlug reports whether s is a well-formed store slug
func ValidStoreSlug(s string) bool {
	return s != "" && len(s) <= maxSlugLength && slugPattern.MatchString(s)
}

type storeSlugURI struct {
	Slug string `uri:"slug" binding:"required,storeslug"`
}

// StoreSlug validates the :slug path parameter before any handler runs.
// A malformed slug never reaches the session store or the upstream API.
func StoreSlug() gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri storeSlugURI
		if err := c.ShouldBindUri(&uri); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidInput,
					"Invalid store slug", GetRequestID(c)))
			return
		}
		c.Set("store_slug", uri.Slug)
		c.Next()
	}
}

// GetStoreSlug returns the validated slug set by StoreSlug
func GetStoreSlug(c *gin.Context) string {
	return c.GetString("store_slug")
}
