package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or mints one, and stores it in
// both the gin context and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Set(RequestIDHeader, reqID)
		c.Header(RequestIDHeader, reqID)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), reqID))

		c.Next()
	}
}

// Logging writes one line per request once the handler chain has finished.
// userID resolves the authenticated user, if any, from the request context.
func Logging(userID func(*gin.Context) (int64, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("duration", time.Since(start)),
		}
		if userID != nil {
			if id, ok := userID(c); ok {
				fields = append(fields, zap.Int64("user_id", id))
			}
		}

		log := FromCtx(c.Request.Context())
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("incoming request", fields...)
		case status >= 400:
			log.Warn("incoming request", fields...)
		default:
			log.Info("incoming request", fields...)
		}
	}
}
