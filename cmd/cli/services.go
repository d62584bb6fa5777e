package cli

import (
	"encoding/json"
	"fmt"

	"github.com/quantgov/mrm/internal/application"
	appservice "github.com/quantgov/mrm/internal/application/service"
	"github.com/quantgov/mrm/internal/config"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/internal/infrastructure/audit"
	"github.com/quantgov/mrm/internal/infrastructure/export"
	"github.com/quantgov/mrm/internal/infrastructure/persistence/sqldb"
	"github.com/quantgov/mrm/pkg/logger"
)

// services bundles the application services the CLI commands operate on.
type services struct {
	inventory *appservice.InventoryAppService
	tiering   *appservice.TieringAppService
	rubric    *appservice.RubricAppService
	export    *appservice.ExportAppService
}

// buildServices wires the application against the configured database. The
// CLI skips the cache and metrics; audit events still land in the database
// so administrative actions leave the same trail as API calls.
func buildServices() (*services, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewNoopLogger()
	db, err := sqldb.NewDB(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var auditService domainservice.AuditService = audit.NewGormAuditService(db)
	if cfg.Audit.SigningKey != "" {
		auditService = audit.NewSigningAuditService(auditService, cfg.Audit.SigningKey)
	}

	seed, err := config.LoadRubric(cfg.Rubric.Path)
	if err != nil {
		return nil, fmt.Errorf("load rubric: %w", err)
	}
	rubrics := application.NewRubricManager(seed, log)

	modelRepo := sqldb.NewModelRepository(db, log)
	tieringRepo := sqldb.NewTieringRepository(db, log)
	engine := domainservice.NewTieringEngine()

	tiering := appservice.NewTieringAppService(
		modelRepo, tieringRepo, engine, rubrics, nil, auditService, nil, log)
	inventory := appservice.NewInventoryAppService(modelRepo, tiering, auditService, nil, log)
	rubric := appservice.NewRubricAppService(rubrics, auditService, nil, log)
	exporter := export.NewExporter(modelRepo, tieringRepo, rubrics, cfg.Export.OutputDir, log)
	exports := appservice.NewExportAppService(exporter, auditService, nil, log)

	return &services{
		inventory: inventory,
		tiering:   tiering,
		rubric:    rubric,
		export:    exports,
	}, nil
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
