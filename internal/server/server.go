package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/internal/gateway"
	"github.com/openbridge-ai/openbridge/internal/server/middleware"
)

type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  *zap.Logger
	service gateway.Service
}

func New(cfg *config.Config, logger *zap.Logger, service gateway.Service) *Server {
	if cfg != nil && cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.CORS())
	if cfg != nil && cfg.Tracing.Enabled {
		engine.Use(otelgin.Middleware("openbridge"))
	}
	engine.Use(middleware.ErrorHandler(logger))

	s := &Server{
		router:  engine,
		config:  cfg,
		logger:  logger,
		service: service,
	}

	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
