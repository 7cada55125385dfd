package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront-be/internal/i18n"
)

// Locale pins the message locale for every route under a /{locale} group.
func Locale(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), locale))
		c.Next()
	}
}
