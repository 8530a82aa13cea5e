package controllers

import (
	"context"
	"net/http"

	"github.com/oalhaj/salescast-backend/api/responses"
	"github.com/oalhaj/salescast-backend/api/validators"
	"github.com/oalhaj/salescast-backend/internal/predictor"
	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
	"github.com/oalhaj/salescast-backend/pkg/logger"
)

type predictionService interface {
	PredictNextDay(ctx context.Context) (*predictor.Prediction, error)
	PredictOne(ctx context.Context, req predictor.AdHocRequest) (*predictor.AdHocPrediction, error)
}

// PredictNextDay forecasts the day after the last loaded record.
func PredictNextDay(svc predictionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prediction service unavailable"))
			return
		}

		prediction, err := svc.PredictNextDay(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prediction)
	}
}

// PredictAdHoc forecasts from a caller-supplied feature payload.
func PredictAdHoc(svc predictionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prediction service unavailable"))
			return
		}

		var req predictor.AdHocRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prediction, err := svc.PredictOne(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prediction)
	}
}
