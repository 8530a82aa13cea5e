package predictor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oalhaj/salescast-backend/internal/artifacts"
	"github.com/oalhaj/salescast-backend/internal/features"
	"github.com/oalhaj/salescast-backend/internal/series"
	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
	"github.com/oalhaj/salescast-backend/pkg/logger"
	"github.com/oalhaj/salescast-backend/pkg/metrics"
	pkgredis "github.com/oalhaj/salescast-backend/pkg/redis"
)

const dateLayout = "2006-01-02"

// Cache is the subset of the redis client the predictor uses. A nil
// Cache disables caching entirely.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	PredictionKey(modelKind, lastAvailableDate string) string
}

// Prediction is the outcome of a next-day forecast.
type Prediction struct {
	Date              string  `json:"date"`
	LastAvailableDate string  `json:"last_available_date"`
	PredictedSales    float64 `json:"predicted_sales"`
	Message           string  `json:"message"`
}

// Info describes the loaded model and the data it forecasts from.
type Info struct {
	ModelType          string `json:"model_type"`
	FeaturesCount      int    `json:"features_count"`
	LastAvailableDate  string `json:"last_available_date"`
	NextPredictionDate string `json:"next_prediction_date"`
	DataRangeDays      int    `json:"data_range_days"`
}

type ServiceParams struct {
	Store    *artifacts.Store
	Series   *series.Holder
	Cleaned  *series.Series
	Cache    Cache
	CacheTTL time.Duration
	Metrics  *metrics.PredictionMetrics
	Logger   *logger.Logger
}

// Service turns the loaded history and artifacts into forecasts.
type Service struct {
	store    *artifacts.Store
	series   *series.Holder
	cleaned  *series.Series
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.PredictionMetrics
	logger   *logger.Logger
}

func NewService(params ServiceParams) *Service {
	return &Service{
		store:    params.Store,
		series:   params.Series,
		cleaned:  params.Cleaned,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		metrics:  params.Metrics,
		logger:   params.Logger,
	}
}

// PredictNextDay forecasts sales for the day after the last available
// record. Results are deterministic for a fixed history and artifact
// set, which is what makes the cache key safe.
func (s *Service) PredictNextDay(ctx context.Context) (*Prediction, error) {
	started := time.Now()
	prediction, err := s.predictNextDay(ctx)
	s.metrics.ObserveDuration(time.Since(started))
	if err != nil {
		s.metrics.IncFailure(string(pkgerrors.As(err).Code()))
		return nil, err
	}
	s.metrics.IncSuccess()
	return prediction, nil
}

func (s *Service) predictNextDay(ctx context.Context) (*Prediction, error) {
	current := s.series.Load()
	lastDate, ok := current.LastDate()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotInitialized, "no sales history loaded")
	}

	lastDateStr := lastDate.Format(dateLayout)
	if cached, ok := s.cachedPrediction(ctx, lastDateStr); ok {
		return cached, nil
	}

	target := lastDate.AddDate(0, 0, 1)
	vector := features.BuildNextDay(target, current, s.cleaned)

	raw, err := s.reindex(vector)
	if err != nil {
		return nil, err
	}

	scaled, err := s.store.Scaler().Transform(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeScaling, err, "scaling feature vector")
	}

	value := s.store.Regressor().Predict(scaled)
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()

	prediction := &Prediction{
		Date:              target.Format(dateLayout),
		LastAvailableDate: lastDateStr,
		PredictedSales:    rounded,
		Message:           "Prediction for the next day after the last available data",
	}
	s.storePrediction(ctx, lastDateStr, prediction)

	ctx = s.logger.WithModelKind(ctx, s.store.ModelKind())
	ctx = s.logger.WithTargetDate(ctx, prediction.Date)
	s.logger.Info(ctx, "next-day prediction computed")
	return prediction, nil
}

// reindex orders the built vector by the canonical feature list. Any
// canonical feature the builder could not produce fails the request
// with the missing names attached.
func (s *Service) reindex(vector *features.Vector) ([]float64, error) {
	names := s.store.FeatureNames()
	raw := make([]float64, 0, len(names))
	var missing []string
	for _, name := range names {
		value, ok := vector.Value(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		raw = append(raw, value)
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeIncompleteFeatures, "history is too sparse to build all model features").
			WithDetails(map[string]any{"missing_features": missing})
	}
	return raw, nil
}

func (s *Service) cachedPrediction(ctx context.Context, lastDate string) (*Prediction, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, s.cache.PredictionKey(s.store.ModelKind(), lastDate))
	if err != nil {
		if err != pkgredis.Nil {
			s.logger.Warn(ctx, "prediction cache read failed")
		}
		return nil, false
	}
	var prediction Prediction
	if err := json.Unmarshal([]byte(payload), &prediction); err != nil {
		s.logger.Warn(ctx, "prediction cache entry is malformed")
		return nil, false
	}
	return &prediction, true
}

func (s *Service) storePrediction(ctx context.Context, lastDate string, prediction *Prediction) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(prediction)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.PredictionKey(s.store.ModelKind(), lastDate), payload, s.cacheTTL); err != nil {
		s.logger.Warn(ctx, "prediction cache write failed")
	}
}

// ModelInfo reports the loaded model variant and data coverage.
func (s *Service) ModelInfo(ctx context.Context) (*Info, error) {
	current := s.series.Load()
	lastDate, ok := current.LastDate()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotInitialized, "no sales history loaded")
	}
	return &Info{
		ModelType:          s.store.ModelKind(),
		FeaturesCount:      s.store.FeatureCount(),
		LastAvailableDate:  lastDate.Format(dateLayout),
		NextPredictionDate: lastDate.AddDate(0, 0, 1).Format(dateLayout),
		DataRangeDays:      current.Len(),
	}, nil
}

// FeatureNames exposes the canonical feature order for clients that
// build their own vectors.
func (s *Service) FeatureNames(ctx context.Context) []string {
	return s.store.FeatureNames()
}
