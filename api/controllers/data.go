package controllers

import (
	"context"
	"net/http"

	"github.com/oalhaj/salescast-backend/api/responses"
	"github.com/oalhaj/salescast-backend/api/validators"
	"github.com/oalhaj/salescast-backend/internal/insights"
	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
	"github.com/oalhaj/salescast-backend/pkg/logger"
)

const maxRecentDays = 365

type insightsService interface {
	Summary(ctx context.Context) (*insights.Summary, error)
	Recent(ctx context.Context, n int) ([]insights.DayRecord, error)
	Trends(ctx context.Context) (*insights.Trends, error)
}

// DataSummary reports counts, coverage and per-column stats of the
// loaded history.
func DataSummary(svc insightsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insights service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// DataRecent returns the trailing days of history, oldest first.
func DataRecent(svc insightsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insights service unavailable"))
			return
		}

		days, err := validators.ParseQueryInt(r, "days", insights.DefaultRecent, 1, maxRecentDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.Recent(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"days":    len(records),
			"records": records,
		})
	}
}

// DataTrends aggregates the history by month and trailing ISO weeks.
func DataTrends(svc insightsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insights service unavailable"))
			return
		}

		trends, err := svc.Trends(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trends)
	}
}
