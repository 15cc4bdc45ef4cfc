package app

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"librisk/internal/artifact"
	"librisk/internal/categories"
	"librisk/internal/config"
	"librisk/internal/models"
	"librisk/internal/services"
	"librisk/internal/store"
	"librisk/internal/store/primary"
	"librisk/internal/store/sqlite"
	"librisk/internal/textnorm"
)

type App struct {
	Config    *config.Config
	Store     store.Store
	JobClient store.JobClient

	// Bundle is nil when the model artifacts could not be loaded. The
	// service still starts so history and model-info keep working.
	Bundle    *artifact.Bundle
	ModelInfo *models.ModelInfo
	ModelErr  error
	ModelDir  string

	Normalizer *textnorm.Normalizer
	Resolver   *categories.Resolver

	// --- Initialized Services ---
	PredictionService *services.PredictionService
	HistoryService    *services.HistoryService
	ModelInfoService  *services.ModelInfoService
	BatchService      *services.BatchService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initModel()
	if err := app.initCoreServices(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}

	log.WithField("model_loaded", app.Bundle != nil).Info("Application initialization complete.")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initStore(ctx context.Context) error {
	var (
		st  store.Store
		err error
	)
	switch a.Config.Database.Driver {
	case config.DriverSQLite:
		st, err = sqlite.NewStore(ctx, a.Config.Database.DSN)
	case config.DriverPostgres:
		st, err = primary.NewPrimaryStore(ctx, a.Config.Database.DSN)
	default:
		return fmt.Errorf("init store: %w: %q", store.ErrUnsupportedDriver, a.Config.Database.Driver)
	}
	if err != nil {
		return fmt.Errorf("init %s store: %w", a.Config.Database.Driver, err)
	}
	a.Store = st
	log.WithField("driver", a.Config.Database.Driver).Info("History store ready")
	return nil
}

func (a *App) initJobClient() error {
	jc, err := store.NewAsynqJobClient(asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

// initModel loads the artifacts. Failure is logged, not returned: the model
// is then reported unavailable per request.
func (a *App) initModel() {
	cfg := a.Config
	a.ModelInfo = &models.ModelInfo{}

	dir, err := config.ResolveModelDir(cfg.Model.Dir)
	if err != nil {
		a.ModelErr = err
		log.WithError(err).Error("Model directory not found; predictions are disabled")
		return
	}
	a.ModelDir = dir

	if info, err := artifact.LoadInfo(dir, cfg.Model.Files); err != nil {
		log.WithError(err).Warn("Failed to read model info")
	} else {
		a.ModelInfo = info
	}

	bundle, err := artifact.Load(dir, cfg.Model.Files)
	if err != nil {
		a.ModelErr = err
		log.WithError(err).WithField("dir", dir).Error("Failed to load model artifacts; predictions are disabled")
		return
	}
	a.Bundle = bundle
	log.WithFields(log.Fields{
		"dir":      dir,
		"labels":   len(bundle.Labels),
		"features": bundle.Vectorizer.Dim(),
	}).Info("Model loaded")
}

func (a *App) initCoreServices() error {
	cfg := a.Config

	a.Normalizer = textnorm.New(textnorm.Options{UnifyYa: cfg.Prediction.UnifyYa})

	var trained map[string][]string
	if a.Bundle != nil {
		trained = a.Bundle.Solutions
	}
	resolver, err := categories.NewDefaultResolver(trained, cfg.Prediction.MaxSolutions)
	if err != nil {
		return fmt.Errorf("init category resolver: %w", err)
	}
	a.Resolver = resolver

	a.PredictionService = services.NewPredictionService(a.Bundle, a.Normalizer, a.Resolver, a.Store, services.PredictionOptions{
		DefaultConfidence:    cfg.Model.DefaultConfidence,
		IncludeProbabilities: cfg.Prediction.IncludeProbabilities,
	})
	a.HistoryService = services.NewHistoryService(a.Store, cfg.Prediction.HistoryLimit)

	fallbackCategories := resolver.Categories()
	if a.Bundle != nil {
		fallbackCategories = a.Bundle.Labels
	}
	a.ModelInfoService = services.NewModelInfoService(a.ModelInfo, a.Bundle != nil, fallbackCategories)
	a.BatchService = services.NewBatchService(a.PredictionService, a.JobClient)
	return nil
}

func (a *App) cleanupPartialInit() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.WithError(err).Warn("Error closing job client")
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			log.WithError(err).Warn("Error closing store")
		}
	}
}

// Close releases the store and the job client.
func (a *App) Close() {
	a.cleanupPartialInit()
}
