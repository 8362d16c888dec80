package commands

import (
	"context"
	"fmt"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/pipeline"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/store"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategyconfig"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/config"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/database"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/redis"
)

// app bundles the wired components every command starts from.
// Optional pieces (db, cache, repo) are nil when not configured.
type app struct {
	cfg          *config.Config
	strategyCfg  *strategyconfig.Config
	log          *logger.Logger
	db           *database.DB
	cache        *redis.Cache
	repo         *store.Repository
	orchestrator *pipeline.Orchestrator
}

// initApp loads configuration and wires the workflow components.
// Database and Redis are optional; a missing DATABASE_URL disables run
// persistence, a disabled Redis disables the analysis cache.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if dataPath != "" {
		cfg.Data.CSVPath = dataPath
	}
	if strategyPath != "" {
		cfg.Data.StrategyPath = strategyPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	strategyCfg, err := strategyconfig.LoadOrDefault(cfg.Data.StrategyPath)
	if err != nil {
		return nil, fmt.Errorf("load strategy config: %w", err)
	}

	a := &app{
		cfg:         cfg,
		strategyCfg: strategyCfg,
		log:         log,
	}

	if cfg.PersistenceEnabled() {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db

		repo := store.NewRepository(db.Pool, log)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		a.repo = repo

		log.Info("Run persistence enabled")
	}

	if cfg.Redis.Enabled {
		client, err := redis.New(cfg)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, analysis cache disabled")
		} else {
			a.cache = redis.NewCache(client, "nivesh")
			log.Info("Analysis cache enabled")
		}
	}

	a.orchestrator = pipeline.New(cfg, strategyCfg, a.repo, log)

	return a, nil
}

// close releases the app's connections.
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}
