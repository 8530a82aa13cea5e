package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oalhaj/salescast-backend/api/controllers"
	"github.com/oalhaj/salescast-backend/api/middleware"
	"github.com/oalhaj/salescast-backend/internal/insights"
	"github.com/oalhaj/salescast-backend/internal/predictor"
	"github.com/oalhaj/salescast-backend/pkg/config"
	"github.com/oalhaj/salescast-backend/pkg/logger"
)

// Params carries everything the router wires into handlers. Gatherer
// may be nil when metrics are not exposed.
type Params struct {
	Config    *config.Config
	Logger    *logger.Logger
	Predictor *predictor.Service
	Insights  *insights.Service
	Gatherer  prometheus.Gatherer
	Readiness []controllers.ReadinessCheck
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)

	r.Get("/health/live", controllers.HealthLive(p.Config))
	r.Get("/health/ready", controllers.HealthReady(p.Config, p.Readiness...))

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/model/info", controllers.ModelInfo(p.Predictor, p.Logger))
		r.Get("/features", controllers.FeatureList(p.Predictor, p.Logger))

		r.Get("/predict/next", controllers.PredictNextDay(p.Predictor, p.Logger))
		r.Post("/predict", controllers.PredictNextDay(p.Predictor, p.Logger))
		r.Post("/predict/adhoc", controllers.PredictAdHoc(p.Predictor, p.Logger))

		r.Route("/data", func(r chi.Router) {
			r.Get("/summary", controllers.DataSummary(p.Insights, p.Logger))
			r.Get("/recent", controllers.DataRecent(p.Insights, p.Logger))
			r.Get("/trends", controllers.DataTrends(p.Insights, p.Logger))
		})
	})

	return r
}
