package controllers

import (
	"context"
	"net/http"

	"github.com/oalhaj/salescast-backend/api/responses"
	"github.com/oalhaj/salescast-backend/pkg/config"
)

// ReadinessCheck reports whether one dependency is ready to serve.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Salescast-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady runs every registered check and reports per-dependency
// status. Any failing check degrades the response to 503.
func HealthReady(cfg *config.Config, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Salescast-Env", cfg.App.Env)

		status := map[string]string{}
		healthy := true
		for _, c := range checks {
			if err := c.Check(r.Context()); err != nil {
				status[c.Name] = err.Error()
				healthy = false
				continue
			}
			status[c.Name] = "ok"
		}

		payload := map[string]any{"status": "ready", "checks": status}
		if !healthy {
			payload["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, payload)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}
