package server

import (
	"github.com/openbridge-ai/openbridge/internal/server/middleware"
	v1 "github.com/openbridge-ai/openbridge/internal/server/v1"
)

func (s *Server) setupRoutes() {
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/healthz", healthHandler.Health)

	api := s.router.Group("/v1")

	// Model listing is deliberately public: clients need to enumerate
	// models before they hold any credential.
	modelsHandler := v1.NewModelHandler(s.service)
	api.GET("/models", modelsHandler.ListModels)

	protected := api.Group("")
	protected.Use(middleware.Auth(s.config, s.logger))
	if s.config != nil && s.config.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(
			s.config.RateLimit.RequestsPerSecond,
			s.config.RateLimit.Burst,
			s.logger,
		)
		protected.Use(limiter.Middleware())
	}

	chatHandler := v1.NewChatHandler(s.service)
	protected.POST("/chat/completions", chatHandler.CreateCompletion)
}
