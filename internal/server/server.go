package server

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/veldt-labs/switchboard/internal/clientpool"
	"github.com/veldt-labs/switchboard/internal/config"
	"github.com/veldt-labs/switchboard/internal/dispatch"
	"github.com/veldt-labs/switchboard/internal/registry"
	"github.com/veldt-labs/switchboard/internal/server/validator"
	"github.com/veldt-labs/switchboard/internal/store"
	"go.uber.org/zap"
)

// Server wires the HTTP surface over the dispatcher and the registry.
type Server struct {
	router *gin.Engine
	config *config.Config
	logger *zap.Logger

	dispatcher *dispatch.Dispatcher
	resolver   *registry.Resolver
	pool       *clientpool.Pool
	repo       store.Repository

	version string
}

func New(cfg *config.Config, logger *zap.Logger, dispatcher *dispatch.Dispatcher, resolver *registry.Resolver, pool *clientpool.Pool, repo store.Repository, version string) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.InitValidator()

	engine := gin.New()
	engine.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	engine.Use(ginzap.RecoveryWithZap(logger, true))

	s := &Server{
		router:     engine,
		config:     cfg,
		logger:     logger,
		dispatcher: dispatcher,
		resolver:   resolver,
		pool:       pool,
		repo:       repo,
		version:    version,
	}

	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
