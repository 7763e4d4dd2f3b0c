package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/pkg/api"
)

const bearerPrefix = "Bearer "

// Auth gates protected routes behind the gateway-wide shared secret.
// Model listing is never routed through this middleware; it stays public.
//
// Known-unsafe fallback: a nil config (a wiring defect, not a deployment
// choice) disables authentication entirely. It is logged loudly so it
// cannot pass unnoticed.
func Auth(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	if cfg == nil {
		logger.Error("Access gate received no configuration; authentication is DISABLED")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// No secret configured: development mode, everything passes.
		if cfg.Server.APIKey == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) || header[len(bearerPrefix):] != cfg.Server.APIKey {
			logger.Warn("Rejected unauthenticated request",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			unauth := api.UnauthorizedError("Invalid API key")
			c.AbortWithStatusJSON(unauth.Status, unauth.Body())
			return
		}

		c.Next()
	}
}
