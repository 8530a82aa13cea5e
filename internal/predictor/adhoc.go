package predictor

import (
	"context"
	"time"

	"github.com/oalhaj/salescast-backend/internal/features"
	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// PredictOne forecasts from a caller-supplied feature payload. The
// calendar features come from the given date, everything else from the
// request, with absent fields contributing zero.
func (s *Service) PredictOne(ctx context.Context, req AdHocRequest) (*AdHocPrediction, error) {
	date, err := time.Parse(dateLayout, req.SaleDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "sale_date must be YYYY-MM-DD")
	}

	vector := features.Calendar(date)
	for name, value := range req.featureValues() {
		vector.Set(name, value)
	}

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

	target := date.AddDate(0, 0, 1)
	ctx = s.logger.WithModelKind(ctx, s.store.ModelKind())
	ctx = s.logger.WithTargetDate(ctx, target.Format(dateLayout))
	s.logger.Debug(ctx, "one-off prediction computed")

	return &AdHocPrediction{
		PredictedSales: rounded,
		SaleDate:       req.SaleDate,
		TargetDate:     target.Format(dateLayout),
		FeaturesUsed:   len(raw),
	}, nil
}
