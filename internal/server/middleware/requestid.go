package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openbridge-ai/openbridge/internal/store"
)

// RequestIDHeader is echoed on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a UUID (honoring one supplied by the
// client) and threads it through the request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Writer.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(c.Request.Context(), store.ContextKeyRequestID, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
