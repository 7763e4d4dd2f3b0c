package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/pkg/api"
)

// ErrorHandler translates errors pushed by handlers via c.Error into the
// gateway's error envelope. Anything that is not a typed *api.Error
// becomes a 500 internal_error.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var gwErr *api.Error
		if errors.As(err, &gwErr) {
			if gwErr.Log != nil {
				logger.Error("Request failed",
					zap.Int("status", gwErr.Status),
					zap.String("type", gwErr.Type),
					zap.Error(gwErr.Log),
				)
			}
			c.JSON(gwErr.Status, gwErr.Body())
			c.Abort()
			return
		}

		logger.Error("Unhandled error", zap.Error(err))
		internal := api.InternalError("An unexpected error occurred", err)
		c.JSON(internal.Status, internal.Body())
		c.Abort()
	}
}
