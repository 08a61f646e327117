package server

import (
	"github.com/veldt-labs/switchboard/internal/server/middleware"
	v1 "github.com/veldt-labs/switchboard/internal/server/v1"
)

func (s *Server) setupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Tracing("switchboard"))
	s.router.Use(middleware.ErrorHandler(s.logger))

	healthHandler := v1.NewHealthHandler(s.pool, s.version)
	s.router.GET("/health", healthHandler.Health)

	limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)

	api := s.router.Group("/v1")
	api.Use(limiter.Middleware())
	api.Use(middleware.Auth(s.repo, s.config.Server.APIKeys))
	{
		generateHandler := v1.NewGenerateHandler(s.dispatcher)
		api.POST("/chat", generateHandler.Chat)
		api.POST("/images", generateHandler.Image)
		api.POST("/audio", generateHandler.Audio)
		api.POST("/video", generateHandler.Video)

		modelHandler := v1.NewModelHandler(s.repo, s.pool)
		api.GET("/models", modelHandler.List)

		adminHandler := v1.NewAdminHandler(s.repo, s.resolver, s.pool)
		admin := api.Group("/admin")
		{
			admin.GET("/models/:type", adminHandler.ListModels)
			admin.POST("/models/:type", adminHandler.CreateModel)
			admin.PUT("/models/:type/:id", adminHandler.UpdateModel)
			admin.DELETE("/models/:type/:id", adminHandler.DeleteModel)
			admin.GET("/stats", adminHandler.Stats)
		}
	}
}
