package controllers

import (
	"context"
	"net/http"

	"github.com/oalhaj/salescast-backend/api/responses"
	"github.com/oalhaj/salescast-backend/internal/predictor"
	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
	"github.com/oalhaj/salescast-backend/pkg/logger"
)

type modelService interface {
	ModelInfo(ctx context.Context) (*predictor.Info, error)
	FeatureNames(ctx context.Context) []string
}

// ModelInfo reports the loaded model variant and data coverage.
func ModelInfo(svc modelService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prediction service unavailable"))
			return
		}

		info, err := svc.ModelInfo(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, info)
	}
}

// FeatureList returns the canonical feature names in model order.
func FeatureList(svc modelService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prediction service unavailable"))
			return
		}

		names := svc.FeatureNames(r.Context())
		responses.WriteSuccess(w, map[string]any{
			"features": names,
			"count":    len(names),
		})
	}
}
