// Command server runs the MRM Governance Service HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantgov/mrm/internal/application"
	appservice "github.com/quantgov/mrm/internal/application/service"
	"github.com/redis/go-redis/v9"

	"github.com/quantgov/mrm/internal/config"
	"github.com/quantgov/mrm/internal/domain/models"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/internal/infrastructure/audit"
	"github.com/quantgov/mrm/internal/infrastructure/cache"
	"github.com/quantgov/mrm/internal/infrastructure/export"
	"github.com/quantgov/mrm/internal/infrastructure/monitoring"
	"github.com/quantgov/mrm/internal/infrastructure/persistence/sqldb"
	httpapi "github.com/quantgov/mrm/internal/interfaces/http"
	"github.com/quantgov/mrm/internal/interfaces/http/handlers"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	ctx := context.Background()

	shutdownTracer, err := monitoring.InitTracer(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracer", err)
	}
	defer shutdownTracer(ctx)

	db, err := sqldb.NewDB(&cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to open database", err)
	}

	// Latest-tiering cache: Redis when configured, in-process otherwise.
	var tieringCache cache.TieringCache
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(&cfg.Redis, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "failed to connect to redis", err)
		}
		defer client.Close()
		redisClient = client
		tieringCache = cache.NewRedisCache(client, appLogger)
	} else {
		tieringCache = cache.NewLocalCache(constants.DefaultLatestTieringTTL)
	}

	// Audit trail: database by default, Kafka when configured, HMAC-signed
	// when a signing key is set.
	var auditService domainservice.AuditService
	switch cfg.Audit.Backend {
	case "kafka":
		auditService = audit.NewKafkaProducer(cfg.Kafka, appLogger)
	default:
		auditService = audit.NewGormAuditService(db)
	}
	if cfg.Audit.SigningKey != "" {
		auditService = audit.NewSigningAuditService(auditService, cfg.Audit.SigningKey)
	}

	metrics := monitoring.NewMetrics()

	seed, err := config.LoadRubric(cfg.Rubric.Path)
	if err != nil {
		appLogger.Fatal(ctx, "failed to load rubric", err)
	}
	rubrics := application.NewRubricManager(seed, appLogger)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.Rubric.Watch && cfg.Rubric.Path != "" {
		err := config.WatchRubric(watchCtx, cfg.Rubric.Path, appLogger, func(rubric *models.Rubric) {
			if err := rubrics.Replace(watchCtx, rubric); err != nil {
				appLogger.Warn(watchCtx, "rejected rubric reload", logger.Error(err))
			}
		})
		if err != nil {
			appLogger.Fatal(ctx, "failed to watch rubric file", err)
		}
	}

	modelRepo := sqldb.NewModelRepository(db, appLogger)
	tieringRepo := sqldb.NewTieringRepository(db, appLogger)

	engine := domainservice.NewTieringEngine()
	tieringSvc := appservice.NewTieringAppService(
		modelRepo, tieringRepo, engine, rubrics, tieringCache, auditService, metrics, appLogger)
	inventorySvc := appservice.NewInventoryAppService(modelRepo, tieringSvc, auditService, metrics, appLogger)
	rubricSvc := appservice.NewRubricAppService(rubrics, auditService, metrics, appLogger)
	exporter := export.NewExporter(modelRepo, tieringRepo, rubrics, cfg.Export.OutputDir, appLogger)
	exportSvc := appservice.NewExportAppService(exporter, auditService, metrics, appLogger)

	router := httpapi.NewRouter(
		cfg,
		appLogger,
		metrics,
		handlers.NewHealthHandler(db, redisClient, appLogger),
		handlers.NewModelHandler(inventorySvc),
		handlers.NewTieringHandler(tieringSvc),
		handlers.NewRubricHandler(rubricSvc),
		handlers.NewExportHandler(exportSvc),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Fatal(ctx, "HTTP server failed", err)
		}
	case sig := <-quit:
		appLogger.Info(ctx, "shutting down", logger.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(ctx, constants.DefaultShutdownTimeout)
		defer cancel()
		if err := router.Stop(shutdownCtx); err != nil {
			appLogger.Error(ctx, "forced shutdown", err)
		}
	}
}
