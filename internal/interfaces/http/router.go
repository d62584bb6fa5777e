// Package http assembles the Gin router and HTTP server of the MRM
// Governance Service.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quantgov/mrm/internal/config"
	"github.com/quantgov/mrm/internal/infrastructure/monitoring"
	"github.com/quantgov/mrm/internal/interfaces/http/handlers"
	"github.com/quantgov/mrm/internal/interfaces/http/middleware"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/logger"
)

// Router wires middleware, handlers, and the HTTP server.
type Router struct {
	engine         *gin.Engine
	config         *config.Config
	log            logger.Logger
	metrics        *monitoring.Metrics
	healthHandler  *handlers.HealthHandler
	modelHandler   *handlers.ModelHandler
	tieringHandler *handlers.TieringHandler
	rubricHandler  *handlers.RubricHandler
	exportHandler  *handlers.ExportHandler
	server         *http.Server
}

// NewRouter creates the router.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	metrics *monitoring.Metrics,
	healthHandler *handlers.HealthHandler,
	modelHandler *handlers.ModelHandler,
	tieringHandler *handlers.TieringHandler,
	rubricHandler *handlers.RubricHandler,
	exportHandler *handlers.ExportHandler,
) *Router {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		engine:         gin.New(),
		config:         cfg,
		log:            log,
		metrics:        metrics,
		healthHandler:  healthHandler,
		modelHandler:   modelHandler,
		tieringHandler: tieringHandler,
		rubricHandler:  rubricHandler,
		exportHandler:  exportHandler,
	}
}

// SetupRoutes registers middleware and routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.RequestLogger(r.log))
	r.engine.Use(middleware.Observability(monitoring.Tracer(), r.metrics))

	if len(r.config.Server.AllowedOrigins) > 0 {
		corsConfig := cors.Config{
			AllowOrigins:     r.config.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		r.engine.Use(cors.New(corsConfig))
	}

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/ready", r.healthHandler.ReadinessCheck)
	r.engine.GET("/live", r.healthHandler.LivenessCheck)

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Server.Environment != "production" {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	{
		modelGroup := v1.Group("/models")
		{
			modelGroup.POST("", r.modelHandler.RegisterModel)
			modelGroup.GET("", r.modelHandler.ListModels)
			modelGroup.GET("/:model_id", r.modelHandler.GetModel)
			modelGroup.POST("/:model_id/tiering", r.tieringHandler.RunTiering)
			modelGroup.GET("/:model_id/tiering", r.tieringHandler.GetTieringHistory)
			modelGroup.GET("/:model_id/tiering/latest", r.tieringHandler.GetLatestTiering)
		}

		v1.GET("/rubric", r.rubricHandler.GetRubric)
		// Replacing the rubric requires the risk-lead role. The route is not
		// registered at all when no JWT secret is configured.
		if r.config.Auth.JWTSecret != "" {
			v1.PUT("/rubric",
				middleware.RequireRole(r.config.Auth.JWTSecret, constants.RubricEditorRole, r.log),
				r.rubricHandler.ReplaceRubric,
			)
		}

		v1.POST("/reports/export", r.exportHandler.RunExport)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "The requested resource was not found",
		})
	})
}

// Engine exposes the underlying Gin engine, used by handler tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start runs the HTTP server until it is stopped.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := r.config.Server.Addr()
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(r.config.Server.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	r.log.Info(context.Background(), "starting HTTP server", logger.String("address", addr))

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the HTTP server down gracefully.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.log.Info(ctx, "stopping HTTP server")
	return r.server.Shutdown(ctx)
}
