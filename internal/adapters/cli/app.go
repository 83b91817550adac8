package cli

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/andrescamacho/chainplanner/internal/adapters/catalog"
	"github.com/andrescamacho/chainplanner/internal/adapters/metrics"
	"github.com/andrescamacho/chainplanner/internal/adapters/persistence"
	"github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
	"github.com/andrescamacho/chainplanner/internal/application/planning/commands"
	"github.com/andrescamacho/chainplanner/internal/application/planning/queries"
	"github.com/andrescamacho/chainplanner/internal/domain/production"
	"github.com/andrescamacho/chainplanner/internal/infrastructure/config"
	"github.com/andrescamacho/chainplanner/internal/infrastructure/database"
	infralogging "github.com/andrescamacho/chainplanner/internal/infrastructure/logging"
)

// application wires a planning session for a single CLI invocation
type application struct {
	cfg       *config.Config
	ctx       context.Context
	logger    *infralogging.ZerologLogger
	logCloser io.Closer
	bundle    *catalog.Bundle
	session   *planning.Session
	mediator  mediator.Mediator
}

// loadConfig loads the configuration and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if catalogSource != "" {
		cfg.Catalog.Source = catalogSource
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if categoriesPath != "" {
		cfg.Catalog.CategoriesPath = categoriesPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger creates the configured logger and a context carrying it
func newLogger(ctx context.Context, cfg *config.Config) (context.Context, *infralogging.ZerologLogger, io.Closer, error) {
	logger, closer, err := infralogging.NewFromConfig(cfg.Logging)
	if err != nil {
		return nil, nil, nil, err
	}
	return logging.WithLogger(ctx, logger), logger, closer, nil
}

// newApplication loads configuration and the catalog, then wires the session, mediator and metrics
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	ctx, logger, closer, err := newLogger(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &application{
		cfg:       cfg,
		ctx:       ctx,
		logger:    logger,
		logCloser: closer,
	}

	var observer production.Observer
	var commandCollector *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		planner := metrics.NewPlannerMetricsCollector(cfg.Metrics.Namespace)
		commandCollector = metrics.NewCommandMetricsCollector(cfg.Metrics.Namespace)
		if err := planner.Register(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register planner metrics: %w", err)
		}
		if err := commandCollector.Register(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		observer = planner
	}

	bundle, err := loadCatalog(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.bundle = bundle

	logger.Log(logging.LevelDebug, "catalog loaded", map[string]interface{}{
		"source":  bundle.Source,
		"digest":  bundle.Digest,
		"recipes": bundle.Catalog.Count(),
	})

	app.session = planning.NewSession(bundle.Catalog, observer)

	med := mediator.NewMediator()
	med.RegisterMiddleware(logging.Middleware())
	med.RegisterMiddleware(metrics.PrometheusMiddleware(commandCollector))
	if err := commands.RegisterHandlers(med, app.session); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	if err := queries.RegisterHandlers(med, app.session); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	app.mediator = med

	return app, nil
}

// Close releases the session, dumps metrics when configured and closes the log output
func (a *application) Close() {
	if a.session != nil {
		a.session.Close()
	}

	if a.cfg.Metrics.Enabled && a.cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
			a.logger.Log(logging.LevelWarn, "failed to write metrics", map[string]interface{}{
				"path":  a.cfg.Metrics.TextfilePath,
				"error": err.Error(),
			})
		}
	}

	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// loadCatalog reads the catalog from the configured source
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Bundle, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return catalog.NewLoader().LoadFile(cfg.Catalog.Path)

	case config.CatalogSourceGameData:
		return catalog.LoadGameData(cfg.Catalog.Path, cfg.Catalog.CategoriesPath)

	case config.CatalogSourceDatabase:
		db, err := openDatabase(&cfg.Database)
		if err != nil {
			return nil, err
		}
		defer database.Close(db)

		recipes, info, err := persistence.NewGormCatalogRepository(db).Load(ctx, cfg.Catalog.Name)
		if err != nil {
			return nil, err
		}
		built, err := catalog.BuildCatalog(recipes)
		if err != nil {
			return nil, fmt.Errorf("stored catalog %s: %w", cfg.Catalog.Name, err)
		}
		return &catalog.Bundle{
			Catalog: built,
			Source:  "database:" + info.Name,
			Digest:  info.Digest,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.Catalog.Source)
	}
}

// openDatabase connects to the configured database and migrates the catalog tables
func openDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
