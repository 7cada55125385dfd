package response

import (
	"github.com/gin-gonic/gin"

	"storefront-be/internal/i18n"
)

type ErrorBody struct {
	Error string `json:"error"`
}

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Error writes {"error": msg} with key translated into the request locale.
func Error(c *gin.Context, status int, key string, params ...any) {
	c.JSON(status, ErrorBody{Error: i18n.T(c.Request.Context(), key, params...)})
}

// Abort is Error followed by aborting the handler chain, for middlewares.
func Abort(c *gin.Context, status int, key string, params ...any) {
	Error(c, status, key, params...)
	c.Abort()
}
