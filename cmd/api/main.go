package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oalhaj/salescast-backend/api/controllers"
	"github.com/oalhaj/salescast-backend/api/routes"
	"github.com/oalhaj/salescast-backend/internal/artifacts"
	"github.com/oalhaj/salescast-backend/internal/insights"
	"github.com/oalhaj/salescast-backend/internal/predictor"
	"github.com/oalhaj/salescast-backend/internal/series"
	"github.com/oalhaj/salescast-backend/pkg/config"
	"github.com/oalhaj/salescast-backend/pkg/db"
	"github.com/oalhaj/salescast-backend/pkg/logger"
	"github.com/oalhaj/salescast-backend/pkg/metrics"
	pkgredis "github.com/oalhaj/salescast-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "salescast"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "salescast",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := artifacts.Load(cfg.Artifacts.Dir)
	if err != nil {
		logg.Error(context.Background(), "failed to load model artifacts", err)
		os.Exit(1)
	}

	// Artifact load is fatal above, so the check is trivially healthy
	// once the server is up.
	readiness := []controllers.ReadinessCheck{
		{Name: "artifacts", Check: func(ctx context.Context) error { return nil }},
	}

	holder, cleaned, dbClient := loadHistory(cfg, logg)
	if dbClient != nil {
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		readiness = append(readiness, controllers.ReadinessCheck{Name: "database", Check: dbClient.Ping})
	}
	readiness = append(readiness, controllers.ReadinessCheck{
		Name: "history",
		Check: func(ctx context.Context) error {
			if holder.Load().Len() == 0 {
				return errors.New("no sales history loaded")
			}
			return nil
		},
	})

	var cache predictor.Cache
	if cfg.Redis.Enabled() {
		redisClient, err := pkgredis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cache = redisClient
		readiness = append(readiness, controllers.ReadinessCheck{Name: "redis", Check: redisClient.Ping})
	}

	registry := prometheus.NewRegistry()
	predictionMetrics := metrics.NewPredictionMetrics(registry)

	predictionService := predictor.NewService(predictor.ServiceParams{
		Store:    store,
		Series:   holder,
		Cleaned:  cleaned,
		Cache:    cache,
		CacheTTL: cfg.Cache.PredictionTTL,
		Metrics:  predictionMetrics,
		Logger:   logg,
	})
	insightsService := insights.NewService(holder, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"model_kind": store.ModelKind(),
	})
	logg.Info(ctx, "starting salescast api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:    cfg,
			Logger:    logg,
			Predictor: predictionService,
			Insights:  insightsService,
			Gatherer:  registry,
			Readiness: readiness,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// loadHistory loads the daily series from the configured source. An
// empty or failed load leaves an empty series behind the holder so the
// server still answers health and info requests.
func loadHistory(cfg *config.Config, logg *logger.Logger) (*series.Holder, *series.Series, *db.Client) {
	ctx := context.Background()

	var cleaned *series.Series
	if cfg.Data.CleanedCSV != "" {
		loaded, err := series.LoadCSV(cfg.Data.CleanedCSV)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "path", cfg.Data.CleanedCSV), "failed to load cleaned series, falling back to daily history")
		} else {
			cleaned = loaded
		}
	}

	if cfg.Data.IsDatabase() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		loaded, err := series.NewRepository(dbClient.DB()).LoadAll(ctx)
		if err != nil {
			logg.Error(ctx, "failed to load sales history from database", err)
			loaded = series.Empty()
		}
		return series.NewHolder(loaded), cleaned, dbClient
	}

	loaded, err := series.LoadCSV(cfg.Data.DailyCSV)
	if err != nil {
		logg.Error(logg.WithField(ctx, "path", cfg.Data.DailyCSV), "failed to load sales history csv", err)
		loaded = series.Empty()
	}
	return series.NewHolder(loaded), cleaned, nil
}
